package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant-floor-backend/internal/db"
	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/model"
)

const testKey = "restaurant-data"

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

// newSQLiteStore returns a store over a private in-memory database.
func newSQLiteStore(t *testing.T) Store {
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB))
	return NewGormStore(gormDB, testKey)
}

var (
	base  = time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	pizza = model.MenuItem{ID: 1, Name: "Pizza", Category: "Mains", Price: 1200}
)

func completedOrder(id, tableID int, at time.Time, waiter mo.Option[int], qty int) model.Order {
	o := model.Order{
		ID: id, TableID: tableID, Timestamp: at, IsCompleted: true, WaiterID: waiter,
		Items: []model.OrderItem{{MenuItem: pizza, Quantity: qty, GuestNumber: 1}},
	}
	o.Recalculate()
	return o
}

func TestGormStore_SnapshotRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	_, ok, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "nothing saved yet")

	state := floor.State{
		Tables: []model.Table{{
			ID: 2, Zone: model.ZoneBilliards, Status: model.StatusOccupied, Guests: 4,
			StartTime: mo.Some(base.Add(123 * time.Millisecond)),
			Orders:    []model.Order{},
			Size:      model.SizeLarge,
		}},
		MenuItems: []model.MenuItem{pizza},
	}
	require.NoError(t, s.SaveSnapshot(ctx, base, state))

	state.Tables[0].Guests = 5
	require.NoError(t, s.SaveSnapshot(ctx, base.Add(time.Minute), state), "second save updates the same key")

	got, ok, err := s.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Tables, 1)
	assert.Equal(t, 5, got.Tables[0].Guests)
	start, present := got.Tables[0].StartTime.Get()
	require.True(t, present)
	assert.True(t, start.Equal(base.Add(123*time.Millisecond)))
	assert.Equal(t, state.MenuItems, got.MenuItems)

	var count int64
	require.NoError(t, s.DB().Model(&model.SnapshotRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormStore_ArchivesCompletedOrdersOnce(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	first := completedOrder(1, 3, base, mo.Some(7), 1)
	require.NoError(t, s.SaveSnapshot(ctx, base, floor.State{Orders: []model.Order{first}}))

	// Re-saving the same history with a tampered order must not overwrite the archive.
	tampered := first
	tampered.TotalAmount = 1
	second := completedOrder(2, 4, base.Add(2*time.Hour), mo.None[int](), 3)
	require.NoError(t, s.SaveSnapshot(ctx, base.Add(time.Hour), floor.State{Orders: []model.Order{tampered, second}}))

	history, err := s.OrderHistory(ctx, time.Time{}, mo.None[int]())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(1200), history[0].TotalAmount)
	assert.Equal(t, 2, history[1].ID)
	assert.Equal(t, int64(3600), history[1].TotalAmount)

	var row model.ArchivedOrder
	require.NoError(t, s.DB().Where("order_id = ?", 2).Take(&row).Error)
	assert.Equal(t, 3, row.ItemCount)
	assert.Nil(t, row.WaiterID)
}

func TestGormStore_OrderHistoryFilters(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	orders := []model.Order{
		completedOrder(1, 1, base, mo.Some(7), 1),
		completedOrder(2, 1, base.Add(24*time.Hour), mo.Some(8), 1),
		completedOrder(3, 2, base.Add(48*time.Hour), mo.Some(7), 2),
	}
	require.NoError(t, s.SaveSnapshot(ctx, base, floor.State{Orders: orders}))

	testCases := []struct {
		name     string
		since    time.Time
		waiterID mo.Option[int]
		expected []int
	}{
		{name: "All", expected: []int{1, 2, 3}},
		{name: "Since", since: base.Add(time.Hour), expected: []int{2, 3}},
		{name: "Waiter", waiterID: mo.Some(7), expected: []int{1, 3}},
		{name: "Waiter and since", since: base.Add(time.Hour), waiterID: mo.Some(7), expected: []int{3}},
		{name: "Unknown waiter", waiterID: mo.Some(99), expected: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			history, err := s.OrderHistory(ctx, tc.since, tc.waiterID)
			require.NoError(t, err)
			ids := make([]int, 0, len(history))
			for _, o := range history {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func TestGormStore_Failures(t *testing.T) {
	state := floor.State{Orders: []model.Order{completedOrder(1, 1, base, mo.None[int](), 1)}}

	testCases := []struct {
		name             string
		run              func(s Store) error
		mockExpectations func(mock sqlmock.Sqlmock)
	}{
		{
			name: "Snapshot read fails",
			run: func(s Store) error {
				_, _, err := s.LoadSnapshot(context.Background())
				return err
			},
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "snapshot_records"`).
					WillReturnError(errors.New("connection reset"))
			},
		},
		{
			name: "Stored snapshot is corrupt",
			run: func(s Store) error {
				_, _, err := s.LoadSnapshot(context.Background())
				return err
			},
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "snapshot_records"`).
					WithArgs(testKey, 1).
					WillReturnRows(sqlmock.NewRows([]string{"key", "payload", "version", "updated_at"}).
						AddRow(testKey, []byte("{broken"), 1, base))
			},
		},
		{
			name: "Snapshot upsert fails and rolls back",
			run: func(s Store) error {
				return s.SaveSnapshot(context.Background(), base, state)
			},
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO "snapshot_records" .* ON CONFLICT \("key"\) DO UPDATE`).
					WithArgs(testKey, Any{}, floor.SchemaVersion, Any{}).
					WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
		},
		{
			name: "Archive insert fails and rolls back the snapshot",
			run: func(s Store) error {
				return s.SaveSnapshot(context.Background(), base, state)
			},
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO "snapshot_records"`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO "archived_orders" .* ON CONFLICT DO NOTHING`).
					WillReturnError(errors.New("constraint violated"))
				mock.ExpectRollback()
			},
		},
		{
			name: "History query fails",
			run: func(s Store) error {
				_, err := s.OrderHistory(context.Background(), base, mo.Some(3))
				return err
			},
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM "archived_orders" WHERE ordered_at >= \$1 AND waiter_id = \$2`).
					WithArgs(Any{}, 3).
					WillReturnError(errors.New("timeout"))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			tc.mockExpectations(mock)

			err := tc.run(NewGormStore(gormDB, testKey))
			assert.Error(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_OrderHistorySkipsUndecodableRows(t *testing.T) {
	gormDB, mock := newTestDB(t)
	good := completedOrder(4, 1, base, mo.None[int](), 1)
	goodPayload := []byte(`{"id":4,"tableId":1,"items":[],"totalAmount":1200,"timestamp":"2024-05-01T18:00:00Z","isCompleted":true,"waiterId":null}`)

	mock.ExpectQuery(`SELECT \* FROM "archived_orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "table_id", "total_amount", "payload"}).
			AddRow(3, 1, 100, []byte("not json")).
			AddRow(good.ID, good.TableID, good.TotalAmount, goodPayload))

	history, err := NewGormStore(gormDB, testKey).OrderHistory(context.Background(), time.Time{}, mo.None[int]())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 4, history[0].ID)
	assert.Equal(t, int64(1200), history[0].TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
