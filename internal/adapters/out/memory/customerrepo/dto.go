// Package customerrepo stores Customer aggregates as detached snapshots.
package customerrepo

import (
	"pizzadelivery/internal/core/domain/model/customer"
	"pizzadelivery/internal/core/domain/model/kernel"
)

// CustomerDTO is the stored row of a customer.
type CustomerDTO struct {
	ID            string
	Name          string
	SessionID     string
	X             kernel.Coordinate
	Y             kernel.Coordinate
	ActiveOrderID string
	OrdersPlaced  int
}

func fromDomain(c *customer.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:           c.ID().String(),
		Name:         c.Name(),
		SessionID:    c.SessionID().String(),
		X:            c.Location().X(),
		Y:            c.Location().Y(),
		OrdersPlaced: c.OrdersPlaced(),
	}
	if orderID := c.ActiveOrderID(); orderID != nil {
		dto.ActiveOrderID = orderID.String()
	}
	return dto
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.IDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	sessionID, err := kernel.IDFromString(dto.SessionID)
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.X, dto.Y)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.ID
	if dto.ActiveOrderID != "" {
		oID, orderErr := kernel.IDFromString(dto.ActiveOrderID)
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return customer.RestoreCustomer(id, dto.Name, sessionID, loc, orderID, dto.OrdersPlaced)
}
