package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	// LoadSnapshot returns the saved floor state; ok is false when nothing
	// has been saved under the key yet.
	LoadSnapshot(ctx context.Context) (state floor.State, ok bool, err error)
	SaveSnapshot(ctx context.Context, now time.Time, state floor.State) error
	OrderHistory(ctx context.Context, since time.Time, waiterID mo.Option[int]) ([]model.Order, error)
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db  *gorm.DB
	key string
}

// NewGormStore creates a new GORM-backed store keeping the snapshot under key.
func NewGormStore(db *gorm.DB, key string) Store {
	return &gormStore{db: db, key: key}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// LoadSnapshot reads and decodes the snapshot row.
func (s *gormStore) LoadSnapshot(ctx context.Context) (floor.State, bool, error) {
	var rec model.SnapshotRecord
	err := s.db.WithContext(ctx).Where("key = ?", s.key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return floor.State{}, false, nil
	}
	if err != nil {
		return floor.State{}, false, fmt.Errorf("failed to read snapshot %q: %w", s.key, err)
	}

	state, err := floor.Deserialize(rec.Payload)
	if err != nil {
		return floor.State{}, false, fmt.Errorf("failed to decode snapshot %q: %w", s.key, err)
	}
	return state, true, nil
}

// SaveSnapshot upserts the serialized state and archives completed orders
// that are not archived yet, in one transaction.
func (s *gormStore) SaveSnapshot(ctx context.Context, now time.Time, state floor.State) error {
	payload, err := floor.Serialize(state)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	archive, err := archiveRecords(state.Orders, now)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := model.SnapshotRecord{
			Key:       s.key,
			Payload:   payload,
			Version:   floor.SchemaVersion,
			UpdatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "version", "updated_at"}),
		}).Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to upsert snapshot %q: %w", s.key, err)
		}

		if len(archive) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&archive).Error; err != nil {
			return fmt.Errorf("failed to archive %d orders: %w", len(archive), err)
		}
		return nil
	})
}

// OrderHistory returns archived orders placed at or after since, oldest
// first. A zero since returns the whole archive.
func (s *gormStore) OrderHistory(ctx context.Context, since time.Time, waiterID mo.Option[int]) ([]model.Order, error) {
	q := s.db.WithContext(ctx).Model(&model.ArchivedOrder{})
	if !since.IsZero() {
		q = q.Where("ordered_at >= ?", since)
	}
	if id, ok := waiterID.Get(); ok {
		q = q.Where("waiter_id = ?", id)
	}

	var rows []model.ArchivedOrder
	if err := q.Order("ordered_at").Order("order_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query order history: %w", err)
	}

	orders := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		var o model.Order
		if err := json.Unmarshal(row.Payload, &o); err != nil {
			log.Printf("Skipping archived order %d: %v", row.OrderID, err)
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func archiveRecords(orders []model.Order, now time.Time) ([]model.ArchivedOrder, error) {
	completed := lo.Filter(orders, func(o model.Order, _ int) bool { return o.IsCompleted })
	records := make([]model.ArchivedOrder, 0, len(completed))
	for _, o := range completed {
		payload, err := json.Marshal(o)
		if err != nil {
			return nil, fmt.Errorf("failed to encode order %d: %w", o.ID, err)
		}
		records = append(records, model.ArchivedOrder{
			OrderID:     o.ID,
			TableID:     o.TableID,
			WaiterID:    o.WaiterID.ToPointer(),
			TotalAmount: o.TotalAmount,
			ItemCount:   lo.SumBy(o.Items, func(i model.OrderItem) int { return i.Quantity }),
			OrderedAt:   o.Timestamp,
			Payload:     payload,
			ArchivedAt:  now,
		})
	}
	return records, nil
}
