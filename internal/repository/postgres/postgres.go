package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
	"bloodbank-backend/internal/utils"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	db            *sql.DB
	users         repository.UserRepository
	requests      repository.BloodRequestRepository
	donations     repository.DonationRepository
	inventory     repository.InventoryRepository
	notifications repository.NotificationRepository
}

var _ repository.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		users:         NewUserRepository(db),
		requests:      NewBloodRequestRepository(db),
		donations:     NewDonationRepository(db),
		inventory:     NewInventoryRepository(db),
		notifications: NewNotificationRepository(db),
	}
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall("MIGRATE", "*")
	_, err := db.ExecContext(ctx, schemaSQL)
	logger.DatabaseResult("MIGRATE", 0, err)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Store) Users() repository.UserRepository                 { return s.users }
func (s *Store) Requests() repository.BloodRequestRepository      { return s.requests }
func (s *Store) Donations() repository.DonationRepository         { return s.donations }
func (s *Store) Inventory() repository.InventoryRepository        { return s.inventory }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// dateArray encodes dates for a DATE[] column.
func dateArray(dates []time.Time) interface{} {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = utils.FormatDate(d)
	}
	return pq.Array(out)
}

// parseDateArray decodes a DATE[] column selected as text[].
func parseDateArray(raw pq.StringArray) ([]time.Time, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]time.Time, len(raw))
	for i, s := range raw {
		d, err := utils.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("bad expiry date %q: %w", s, err)
		}
		out[i] = d
	}
	return out, nil
}
