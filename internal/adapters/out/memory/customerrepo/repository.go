package customerrepo

import (
	"context"

	"pizzadelivery/internal/adapters/out/memory/table"
	"pizzadelivery/internal/core/domain/model/customer"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/errs"
)

type Tables struct {
	Customers *table.Table[CustomerDTO]
	BySession *table.Table[string]
}

func NewTables() Tables {
	return Tables{
		Customers: table.New[CustomerDTO](),
		BySession: table.New[string](),
	}
}

// Repository implements ports.CustomerRepository over Tables.
type Repository struct {
	tables Tables
	tx     table.Tx
}

func NewRepository(tables Tables, tx table.Tx) *Repository {
	return &Repository{tables: tables, tx: tx}
}

func (r *Repository) Add(_ context.Context, aggregate *customer.Customer) error {
	j, err := r.tx.Journal()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if _, exists := r.tables.Customers.Get(dto.ID); exists {
		return errs.NewValueIsInvalidError("customer id")
	}
	if _, taken := r.tables.BySession.Get(dto.SessionID); taken {
		return errs.NewValueIsInvalidError("session id")
	}

	r.tables.Customers.Put(j, dto.ID, dto)
	r.tables.BySession.Put(j, dto.SessionID, dto.ID)
	return nil
}

func (r *Repository) Update(_ context.Context, aggregate *customer.Customer) error {
	j, err := r.tx.Journal()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if _, exists := r.tables.Customers.Get(dto.ID); !exists {
		return errs.NewObjectNotFoundError("customer", dto.ID)
	}

	r.tables.Customers.Put(j, dto.ID, dto)
	return nil
}

func (r *Repository) Remove(_ context.Context, id kernel.ID) error {
	j, err := r.tx.Journal()
	if err != nil {
		return err
	}

	dto, exists := r.tables.Customers.Get(id.String())
	if !exists {
		return errs.NewObjectNotFoundError("customer", id.String())
	}

	r.tables.Customers.Delete(j, dto.ID)
	r.tables.BySession.Delete(j, dto.SessionID)
	return nil
}

func (r *Repository) Get(_ context.Context, id kernel.ID) (*customer.Customer, error) {
	if _, err := r.tx.Journal(); err != nil {
		return nil, err
	}

	dto, exists := r.tables.Customers.Get(id.String())
	if !exists {
		return nil, errs.NewObjectNotFoundError("customer", id.String())
	}
	return toDomain(dto)
}

func (r *Repository) GetBySession(ctx context.Context, sessionID kernel.ID) (*customer.Customer, error) {
	if _, err := r.tx.Journal(); err != nil {
		return nil, err
	}

	id, exists := r.tables.BySession.Get(sessionID.String())
	if !exists {
		return nil, errs.NewObjectNotFoundError("customer session", sessionID.String())
	}

	customerID, err := kernel.IDFromString(id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, customerID)
}

func (r *Repository) Count(_ context.Context) (int, error) {
	if _, err := r.tx.Journal(); err != nil {
		return 0, err
	}
	return r.tables.Customers.Len(), nil
}
