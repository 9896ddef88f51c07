// Package deliveryrepo persists the delivery journal: one row per completed
// delivery, written in the background so a slow database never holds up a
// client reply.
package deliveryrepo

import (
	"time"

	"pizzadelivery/internal/core/ports"
)

// DeliveryDTO represents the database structure of a journal entry.
// Rows are append-only and keyed by order id.
type DeliveryDTO struct {
	OrderID          string `gorm:"type:varchar(32);primaryKey"`
	CustomerID       string `gorm:"type:varchar(32);index"`
	DriverID         string `gorm:"type:varchar(32);index"`
	DriverName       string
	PizzaType        string `gorm:"type:varchar(32)"`
	Address          string
	Score            int `gorm:"type:smallint"`
	ActualSeconds    int
	EstimatedSeconds int
	CreatedAt        time.Time
	DeliveredAt      time.Time `gorm:"index"`
}

// TableName specifies the database table name for journal entries.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromRecord converts a journal record to its database representation.
func fromRecord(rec ports.DeliveryRecord) DeliveryDTO {
	return DeliveryDTO{
		OrderID:          rec.OrderID,
		CustomerID:       rec.CustomerID,
		DriverID:         rec.DriverID,
		DriverName:       rec.DriverName,
		PizzaType:        rec.PizzaType,
		Address:          rec.Address,
		Score:            rec.Score,
		ActualSeconds:    rec.ActualSeconds,
		EstimatedSeconds: rec.EstimatedSeconds,
		CreatedAt:        rec.CreatedAt,
		DeliveredAt:      rec.DeliveredAt,
	}
}
