package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"pizzadelivery/internal/adapters/out/memory"
	"pizzadelivery/internal/core/application/usecases/commands"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/protocol"
)

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW {
	return f()
}

func uowFactory(factory *memory.UnitOfWorkFactory) commands.UoWFactory {
	return funcUoWFactory(func() commands.UoW { return factory.Create() })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type inbox struct {
	mu    sync.Mutex
	lines map[string][]string
}

func newInbox() *inbox {
	return &inbox{lines: make(map[string][]string)}
}

func (i *inbox) Send(_ context.Context, sessionID kernel.ID, msg protocol.Message) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.lines[sessionID.String()] = append(i.lines[sessionID.String()], msg.String())
	return nil
}

func (i *inbox) to(sessionID kernel.ID) []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.lines[sessionID.String()]...)
}

