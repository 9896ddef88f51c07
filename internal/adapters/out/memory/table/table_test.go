package table_test

import (
	"testing"

	"pizzadelivery/internal/adapters/out/memory/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys[V any](t *table.Table[V]) []string {
	var out []string
	t.Scan(func(key string, _ V) bool {
		out = append(out, key)
		return true
	})
	return out
}

func TestTable_PutAndGet(t *testing.T) {
	tbl := table.New[int]()
	j := table.NewJournal()

	tbl.Put(j, "a", 1)
	tbl.Put(j, "b", 2)
	tbl.Put(j, "a", 3)

	v, ok := tbl.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"a", "b"}, keys(tbl), "replacing keeps the original position")
	assert.Equal(t, 3, j.Len())
}

func TestTable_Undo(t *testing.T) {
	t.Run("reverts inserts, replaces and deletes", func(t *testing.T) {
		tbl := table.New[string]()
		setup := table.NewJournal()
		tbl.Put(setup, "x", "one")
		tbl.Put(setup, "y", "two")
		tbl.Put(setup, "z", "three")
		setup.Forget()

		j := table.NewJournal()
		tbl.Put(j, "x", "changed")
		require.True(t, tbl.Delete(j, "y"))
		tbl.Put(j, "w", "new")
		tbl.Put(j, "y", "back")

		j.Undo()

		assert.Equal(t, []string{"x", "y", "z"}, keys(tbl))
		x, _ := tbl.Get("x")
		y, _ := tbl.Get("y")
		assert.Equal(t, "one", x)
		assert.Equal(t, "two", y)
		_, ok := tbl.Get("w")
		assert.False(t, ok)
		assert.Zero(t, j.Len())
	})

	t.Run("forget keeps the writes", func(t *testing.T) {
		tbl := table.New[int]()
		j := table.NewJournal()
		tbl.Put(j, "k", 7)
		j.Forget()
		j.Undo()

		v, ok := tbl.Get("k")
		require.True(t, ok)
		assert.Equal(t, 7, v)
	})
}

func TestTable_Delete(t *testing.T) {
	tbl := table.New[int]()
	j := table.NewJournal()

	assert.False(t, tbl.Delete(j, "missing"))
	assert.Zero(t, j.Len())

	tbl.Put(j, "a", 1)
	tbl.Put(j, "b", 2)
	tbl.Put(j, "c", 3)
	require.True(t, tbl.Delete(j, "b"))
	assert.Equal(t, []string{"a", "c"}, keys(tbl))
}

func TestTable_ScanStops(t *testing.T) {
	tbl := table.New[int]()
	j := table.NewJournal()
	for _, k := range []string{"a", "b", "c"} {
		tbl.Put(j, k, 0)
	}

	var seen []string
	tbl.Scan(func(key string, _ int) bool {
		seen = append(seen, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
