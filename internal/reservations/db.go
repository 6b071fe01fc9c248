package reservations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"snow-tracker/internal/models"
)

var (
	// ErrNotFound is returned when no reservation has the requested id.
	ErrNotFound = errors.New("reservation not found")
	// ErrInvalidOptions wraps validation failures of ListOptions.
	ErrInvalidOptions = errors.New("invalid reservation list options")
)

type DB struct {
	Bun *bun.DB
}

// OpenMemory opens a private in-memory SQLite database. A single connection
// is kept so the database lives as long as the DB.
func OpenMemory(ctx context.Context) (*DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	if err := bunDB.ResetModel(ctx, (*models.ReservationRecord)(nil)); err != nil {
		bunDB.Close()
		return nil, fmt.Errorf("create reservations table: %w", err)
	}
	return &DB{Bun: bunDB}, nil
}

// Seed loads the static reservation table. It is called once at startup.
func (d *DB) Seed(ctx context.Context, records []models.ReservationRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]models.ReservationRecord, len(records))
	copy(rows, records)
	for i := range rows {
		if rows[i].Seq == 0 {
			rows[i].Seq = i + 1
		}
	}
	_, err := d.Bun.NewInsert().Model(&rows).Exec(ctx)
	return err
}

func (d *DB) GetByID(ctx context.Context, id string) (*models.ReservationRecord, error) {
	var record models.ReservationRecord
	err := d.Bun.NewSelect().
		Model(&record).
		Where("reservation_id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// SortField defines the valid fields for sorting reservations
type SortField string

const (
	SortByID     SortField = "id"
	SortByUser   SortField = "user"
	SortByResort SortField = "resort"
	SortByStatus SortField = "status"
)

var sortColumns = map[SortField]string{
	SortByID:     "reservation_id",
	SortByUser:   "user_name",
	SortByResort: "resort",
	SortByStatus: "status",
}

func (d *DB) List(ctx context.Context, options ListOptions) ([]models.ReservationRecord, error) {
	q := d.Bun.NewSelect().Model((*models.ReservationRecord)(nil))

	if options.Status != "" {
		q = q.Where("status = ?", options.Status)
	}
	if options.PaymentStatus != "" {
		q = q.Where("payment_status = ?", options.PaymentStatus)
	}
	if options.Resort != "" {
		q = q.Where("resort = ?", options.Resort)
	}

	if column, ok := sortColumns[SortField(options.SortBy)]; ok {
		direction := "ASC"
		if options.SortDesc {
			direction = "DESC"
		}
		q = q.Order(column+" "+direction, "seq ASC")
	} else {
		q = q.Order("seq ASC")
	}

	if options.Limit > 0 {
		q = q.Limit(options.Limit)
	} else if options.Offset > 0 {
		// SQLite needs a LIMIT before OFFSET.
		q = q.Limit(-1)
	}
	if options.Offset > 0 {
		q = q.Offset(options.Offset)
	}

	records := []models.ReservationRecord{}
	if err := q.Scan(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (d *DB) Close() error {
	return d.Bun.Close()
}
