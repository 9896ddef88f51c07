package orderrepo

import (
	"context"

	"pizzadelivery/internal/adapters/out/memory/table"
	"pizzadelivery/internal/core/domain/model/kernel"
	"pizzadelivery/internal/core/domain/model/order"
	"pizzadelivery/internal/pkg/errs"
)

type Tables struct {
	Orders *table.Table[OrderDTO]
}

func NewTables() Tables {
	return Tables{Orders: table.New[OrderDTO]()}
}

// Repository implements ports.OrderRepository over Tables.
type Repository struct {
	tables Tables
	tx     table.Tx
}

func NewRepository(tables Tables, tx table.Tx) *Repository {
	return &Repository{tables: tables, tx: tx}
}

// Add saves a new order.
func (r *Repository) Add(_ context.Context, aggregate *order.Order) error {
	j, err := r.tx.Journal()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if _, exists := r.tables.Orders.Get(dto.ID); exists {
		return errs.NewValueIsInvalidError("order id")
	}

	r.tables.Orders.Put(j, dto.ID, dto)
	return nil
}

// Update saves an existing order.
func (r *Repository) Update(_ context.Context, aggregate *order.Order) error {
	j, err := r.tx.Journal()
	if err != nil {
		return err
	}
	if err = aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if _, exists := r.tables.Orders.Get(dto.ID); !exists {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	r.tables.Orders.Put(j, dto.ID, dto)
	return nil
}

// Get retrieves an order by ID.
func (r *Repository) Get(_ context.Context, id kernel.ID) (*order.Order, error) {
	if _, err := r.tx.Journal(); err != nil {
		return nil, err
	}

	dto, exists := r.tables.Orders.Get(id.String())
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return toDomain(dto)
}

// GetFirstAwaitingDriver retrieves an order that is ready for pickup but has no driver.
func (r *Repository) GetFirstAwaitingDriver(_ context.Context) (*order.Order, error) {
	if _, err := r.tx.Journal(); err != nil {
		return nil, err
	}

	var (
		found OrderDTO
		ok    bool
	)
	r.tables.Orders.Scan(func(_ string, dto OrderDTO) bool {
		if order.Status(dto.Status) == order.Preparing && dto.ReadyForPickup && dto.DriverID == "" {
			found, ok = dto, true
			return false
		}
		return true
	})

	if !ok {
		return nil, errs.NewObjectNotFoundError("order", "first awaiting driver")
	}
	return toDomain(found)
}

// GetAllUncompleted retrieves every order that has not been delivered.
func (r *Repository) GetAllUncompleted(_ context.Context) ([]*order.Order, error) {
	if _, err := r.tx.Journal(); err != nil {
		return nil, err
	}

	var (
		orders  []*order.Order
		scanErr error
	)
	r.tables.Orders.Scan(func(_ string, dto OrderDTO) bool {
		if order.Status(dto.Status) == order.Delivered {
			return true
		}
		o, err := toDomain(dto)
		if err != nil {
			scanErr = err
			return false
		}
		orders = append(orders, o)
		return true
	})

	if scanErr != nil {
		return nil, scanErr
	}
	return orders, nil
}

// CountByStatus counts orders per status.
func (r *Repository) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	if _, err := r.tx.Journal(); err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int)
	r.tables.Orders.Scan(func(_ string, dto OrderDTO) bool {
		counts[order.Status(dto.Status)]++
		return true
	})
	return counts, nil
}
