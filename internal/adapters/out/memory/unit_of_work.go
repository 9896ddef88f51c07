// Package memory provides the shared state of the pizza delivery server:
// drivers, customers and orders kept in process memory behind one lock.
//
// Every access goes through a unit of work. Begin takes the store lock and
// Commit or Rollback release it, so a whole command (read, decide, write)
// is atomic with respect to every other session and timer.
//
// Usage:
//
//	store := memory.NewStore()
//	factory := memory.NewUnitOfWorkFactory(store)
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	d, err := uow.DriverRepository().GetBySession(ctx, sessionID)
//	if err != nil {
//	    return err
//	}
//	d.GoReady()
//	if err := uow.DriverRepository().Update(ctx, d); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after Commit returns table.ErrNoActiveTransaction and changes
// nothing, which makes the deferred Rollback above safe.
//
// Rollback restores every row written since Begin. Aggregates handed out by
// the repositories are detached copies; changing one has no effect until it
// is passed to Update.
package memory

import (
	"context"
	"sync"

	"pizzadelivery/internal/adapters/out/memory/customerrepo"
	"pizzadelivery/internal/adapters/out/memory/driverrepo"
	"pizzadelivery/internal/adapters/out/memory/orderrepo"
	"pizzadelivery/internal/adapters/out/memory/table"
	"pizzadelivery/internal/core/ports"
)

// Store owns the tables and the single lock guarding them.
type Store struct {
	mu        sync.Mutex
	drivers   driverrepo.Tables
	customers customerrepo.Tables
	orders    orderrepo.Tables
}

func NewStore() *Store {
	return &Store{
		drivers:   driverrepo.NewTables(),
		customers: customerrepo.NewTables(),
		orders:    orderrepo.NewTables(),
	}
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork holds the store lock between Begin and Commit/Rollback.
// An instance is not safe for use by more than one goroutine.
type UnitOfWork struct {
	store   *Store
	journal *table.Journal
}

// Begin acquires the store lock. Calling Begin on a unit of work that is
// already active is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.journal != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	uow.store.mu.Lock()
	uow.journal = table.NewJournal()
	return nil
}

// Commit keeps every write and releases the lock.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.journal == nil {
		return table.ErrNoActiveTransaction
	}

	uow.journal.Forget()
	uow.release()
	return nil
}

// Rollback undoes every write and releases the lock.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.journal == nil {
		return table.ErrNoActiveTransaction
	}

	uow.journal.Undo()
	uow.release()
	return nil
}

func (uow *UnitOfWork) release() {
	uow.journal = nil
	uow.store.mu.Unlock()
}

// Journal implements table.Tx.
func (uow *UnitOfWork) Journal() (*table.Journal, error) {
	if uow.journal == nil {
		return nil, table.ErrNoActiveTransaction
	}
	return uow.journal, nil
}

func (uow *UnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewRepository(uow.store.drivers, uow)
}

func (uow *UnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewRepository(uow.store.customers, uow)
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewRepository(uow.store.orders, uow)
}
