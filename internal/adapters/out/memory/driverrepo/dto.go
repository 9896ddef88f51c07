// Package driverrepo stores Driver aggregates as detached snapshots so that
// no caller ever holds a reference into the shared state.
package driverrepo

import (
	"pizzadelivery/internal/core/domain/model/branch"
	"pizzadelivery/internal/core/domain/model/driver"
	"pizzadelivery/internal/core/domain/model/kernel"
)

// DriverDTO is the stored row of a driver.
type DriverDTO struct {
	ID             string
	Name           string
	SessionID      string
	BranchID       string
	X              kernel.Coordinate
	Y              kernel.Coordinate
	Ready          bool
	CurrentOrderID string
	DeliveredCount int
	Arrived        bool
}

func fromDomain(d *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:             d.ID().String(),
		Name:           d.Name(),
		SessionID:      d.SessionID().String(),
		BranchID:       d.Branch().ID(),
		X:              d.Location().X(),
		Y:              d.Location().Y(),
		Ready:          d.IsReady(),
		DeliveredCount: d.DeliveredCount(),
		Arrived:        d.HasArrived(),
	}
	if orderID := d.CurrentOrderID(); orderID != nil {
		dto.CurrentOrderID = orderID.String()
	}
	return dto
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.IDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	sessionID, err := kernel.IDFromString(dto.SessionID)
	if err != nil {
		return nil, err
	}

	home, err := branch.ByID(dto.BranchID)
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.X, dto.Y)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.ID
	if dto.CurrentOrderID != "" {
		oID, orderErr := kernel.IDFromString(dto.CurrentOrderID)
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return driver.RestoreDriver(id, dto.Name, sessionID, home, loc, dto.Ready, orderID, dto.DeliveredCount, dto.Arrived)
}
