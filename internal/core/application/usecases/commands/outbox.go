package commands

import (
	"context"
	"errors"

	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/ports"
	"pizzadelivery/internal/pkg/errs"
	"pizzadelivery/internal/protocol"
)

type envelope struct {
	sessionID kernel.ID
	msg       protocol.Message
}

// outbox collects notifications while a unit of work is open. They are sent
// in insertion order after the commit, so no socket write ever happens while
// the store lock is held and nothing is sent for a rolled back command.
type outbox struct {
	notifier ports.Notifier
	pending  []envelope
}

func newOutbox(notifier ports.Notifier) *outbox {
	return &outbox{notifier: notifier}
}

func (o *outbox) add(sessionID kernel.ID, msg protocol.Message) {
	o.pending = append(o.pending, envelope{sessionID: sessionID, msg: msg})
}

// flush sends every pending message. A failed push is not retried; the
// notifier reports it.
func (o *outbox) flush(ctx context.Context) {
	for _, e := range o.pending {
		_ = o.notifier.Send(ctx, e.sessionID, e.msg)
	}
	o.pending = nil
}

// customerSession resolves the connection of a customer. ok is false when the
// customer has already disconnected.
func customerSession(ctx context.Context, repo ports.CustomerRepository, customerID kernel.ID) (kernel.ID, bool, error) {
	c, err := repo.Get(ctx, customerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.ID{}, false, nil
	}
	if err != nil {
		return kernel.ID{}, false, err
	}
	return c.SessionID(), true, nil
}
