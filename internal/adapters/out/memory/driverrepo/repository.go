package driverrepo

import (
	"context"

	"pizzadelivery/internal/adapters/out/memory/table"
	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/pkg/errs"
)

// Tables holds the driver rows and the session index.
type Tables struct {
	Drivers   *table.Table[DriverDTO]
	BySession *table.Table[string]
}

func NewTables() Tables {
	return Tables{
		Drivers:   table.New[DriverDTO](),
		BySession: table.New[string](),
	}
}

// Repository implements ports.DriverRepository over Tables.
type Repository struct {
	tables Tables
	tx     table.Tx
}

func NewRepository(tables Tables, tx table.Tx) *Repository {
	return &Repository{tables: tables, tx: tx}
}

// Add stores a new driver. A session can hold at most one driver.
func (r *Repository) Add(_ context.Context, aggregate *driver.Driver) error {
	j, err := r.tx.Journal()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if _, exists := r.tables.Drivers.Get(dto.ID); exists {
		return errs.NewValueIsInvalidError("driver id")
	}
	if _, taken := r.tables.BySession.Get(dto.SessionID); taken {
		return errs.NewValueIsInvalidError("session id")
	}

	r.tables.Drivers.Put(j, dto.ID, dto)
	r.tables.BySession.Put(j, dto.SessionID, dto.ID)
	return nil
}

// Update stores changes to an existing driver.
func (r *Repository) Update(_ context.Context, aggregate *driver.Driver) error {
	j, err := r.tx.Journal()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if _, exists := r.tables.Drivers.Get(dto.ID); !exists {
		return errs.NewObjectNotFoundError("driver", dto.ID)
	}

	r.tables.Drivers.Put(j, dto.ID, dto)
	return nil
}

// Remove deletes a driver and its session entry.
func (r *Repository) Remove(_ context.Context, id kernel.ID) error {
	j, err := r.tx.Journal()
	if err != nil {
		return err
	}

	dto, exists := r.tables.Drivers.Get(id.String())
	if !exists {
		return errs.NewObjectNotFoundError("driver", id.String())
	}

	r.tables.Drivers.Delete(j, dto.ID)
	r.tables.BySession.Delete(j, dto.SessionID)
	return nil
}

// Get retrieves a driver by ID.
func (r *Repository) Get(_ context.Context, id kernel.ID) (*driver.Driver, error) {
	if _, err := r.tx.Journal(); err != nil {
		return nil, err
	}

	dto, exists := r.tables.Drivers.Get(id.String())
	if !exists {
		return nil, errs.NewObjectNotFoundError("driver", id.String())
	}
	return toDomain(dto)
}

// GetBySession retrieves the driver registered on a session.
func (r *Repository) GetBySession(ctx context.Context, sessionID kernel.ID) (*driver.Driver, error) {
	if _, err := r.tx.Journal(); err != nil {
		return nil, err
	}

	id, exists := r.tables.BySession.Get(sessionID.String())
	if !exists {
		return nil, errs.NewObjectNotFoundError("driver session", sessionID.String())
	}

	driverID, err := kernel.IDFromString(id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, driverID)
}

// GetAllAvailable retrieves every ready driver without an active order.
func (r *Repository) GetAllAvailable(_ context.Context) ([]*driver.Driver, error) {
	return r.filter(func(dto DriverDTO) bool {
		return dto.Ready && dto.CurrentOrderID == ""
	})
}

// GetAllDelivering retrieves every driver with an active order.
func (r *Repository) GetAllDelivering(_ context.Context) ([]*driver.Driver, error) {
	return r.filter(func(dto DriverDTO) bool {
		return dto.CurrentOrderID != ""
	})
}

func (r *Repository) Count(_ context.Context) (int, error) {
	if _, err := r.tx.Journal(); err != nil {
		return 0, err
	}
	return r.tables.Drivers.Len(), nil
}

func (r *Repository) filter(keep func(DriverDTO) bool) ([]*driver.Driver, error) {
	if _, err := r.tx.Journal(); err != nil {
		return nil, err
	}

	var (
		drivers []*driver.Driver
		scanErr error
	)
	r.tables.Drivers.Scan(func(_ string, dto DriverDTO) bool {
		if !keep(dto) {
			return true
		}
		d, err := toDomain(dto)
		if err != nil {
			scanErr = err
			return false
		}
		drivers = append(drivers, d)
		return true
	})

	if scanErr != nil {
		return nil, scanErr
	}
	return drivers, nil
}
