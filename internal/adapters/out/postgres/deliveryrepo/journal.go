package deliveryrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pizzadelivery/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultBufferSize   = 256
	DefaultWriteTimeout = 5 * time.Second
)

var (
	ErrJournalClosed = errors.New("delivery journal is closed")
	ErrJournalFull   = errors.New("delivery journal buffer is full")
)

// GormJournal implements ports.DeliveryJournal over a PostgreSQL table.
// Record only enqueues; a single writer goroutine inserts the rows in order.
// Writing the same order twice keeps the first row.
type GormJournal struct {
	db           *gorm.DB
	records      chan DeliveryDTO
	done         chan struct{}
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool

	logger *slog.Logger
}

// NewGormJournal starts the writer. bufferSize <= 0 selects DefaultBufferSize.
//
// Example:
//
//	journal := deliveryrepo.NewGormJournal(db, 0, logger)
//	defer journal.Close(ctx)
func NewGormJournal(db *gorm.DB, bufferSize int, logger *slog.Logger) *GormJournal {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	j := &GormJournal{
		db:           db,
		records:      make(chan DeliveryDTO, bufferSize),
		done:         make(chan struct{}),
		writeTimeout: DefaultWriteTimeout,
		logger:       logger.With("component", "delivery_journal"),
	}
	go j.run()
	return j
}

// Record enqueues a completed delivery. It never waits for the database; a
// full buffer drops the record and reports ErrJournalFull.
func (j *GormJournal) Record(ctx context.Context, rec ports.DeliveryRecord) error {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		return ErrJournalClosed
	}

	select {
	case j.records <- fromRecord(rec):
		return nil
	default:
		j.logger.WarnContext(ctx, "Journal buffer full, dropping delivery", "order_id", rec.OrderID)
		return ErrJournalFull
	}
}

// Close stops accepting records and waits until the buffered ones are
// written or ctx ends.
func (j *GormJournal) Close(ctx context.Context) error {
	j.mu.Lock()
	if !j.closed {
		j.closed = true
		close(j.records)
	}
	j.mu.Unlock()

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("delivery journal did not drain: %w", ctx.Err())
	}
}

func (j *GormJournal) run() {
	defer close(j.done)

	for dto := range j.records {
		if err := j.write(dto); err != nil {
			j.logger.Error("Failed to write delivery", "order_id", dto.OrderID, "error", err)
			continue
		}
		j.logger.Debug("Delivery written", "order_id", dto.OrderID, "score", dto.Score)
	}
}

func (j *GormJournal) write(dto DeliveryDTO) error {
	ctx, cancel := context.WithTimeout(context.Background(), j.writeTimeout)
	defer cancel()

	return j.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// NopJournal discards every record. Used when no database is configured.
type NopJournal struct{}

func (NopJournal) Record(context.Context, ports.DeliveryRecord) error {
	return nil
}
