package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.BloodInventory, error) {
	query := `SELECT blood_type, units_available, units_reserved, expiry_dates::text[], last_updated, location
	          FROM blood_inventory ORDER BY id`
	logger.DatabaseCall("SELECT", "blood_inventory")
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var out []domain.BloodInventory
	for rows.Next() {
		var inv domain.BloodInventory
		var expiry pq.StringArray
		if err := rows.Scan(&inv.BloodType, &inv.UnitsAvailable, &inv.UnitsReserved, &expiry, &inv.LastUpdated, &inv.Location); err != nil {
			return nil, err
		}
		if inv.ExpiryDates, err = parseDateArray(expiry); err != nil {
			return nil, err
		}
		inv.LastUpdated = inv.LastUpdated.UTC()
		out = append(out, inv)
	}
	logger.DatabaseResult("SELECT", int64(len(out)), rows.Err())
	return out, rows.Err()
}

func (r *inventoryRepository) Create(ctx context.Context, inv *domain.BloodInventory) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO blood_inventory (blood_type, units_available, units_reserved, expiry_dates, last_updated, location)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	logger.DatabaseCall("INSERT", "blood_inventory", "bloodType", inv.BloodType)
	_, err := r.db.ExecContext(ctx, query, inv.BloodType, inv.UnitsAvailable, inv.UnitsReserved,
		dateArray(inv.ExpiryDates), inv.LastUpdated, inv.Location)
	logger.DatabaseResult("INSERT", 1, err)
	return err
}

func (r *inventoryRepository) ListListings(ctx context.Context) ([]domain.BloodBankListing, error) {
	query := `SELECT center_name, phone, distance_km, blood_type, units_available, units_reserved,
	                 expiry_dates::text[], last_updated, location
	          FROM blood_bank_listings ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.BloodBankListing
	for rows.Next() {
		var l domain.BloodBankListing
		var expiry pq.StringArray
		if err := rows.Scan(&l.CenterName, &l.Phone, &l.DistanceKm, &l.BloodType, &l.UnitsAvailable,
			&l.UnitsReserved, &expiry, &l.LastUpdated, &l.Location); err != nil {
			return nil, err
		}
		if l.ExpiryDates, err = parseDateArray(expiry); err != nil {
			return nil, err
		}
		l.LastUpdated = l.LastUpdated.UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *inventoryRepository) CreateListing(ctx context.Context, l *domain.BloodBankListing) error {
	if err := l.BloodInventory.Validate(); err != nil {
		return err
	}
	query := `INSERT INTO blood_bank_listings (center_name, phone, distance_km, blood_type, units_available,
	                 units_reserved, expiry_dates, last_updated, location)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	logger.DatabaseCall("INSERT", "blood_bank_listings", "center", l.CenterName)
	_, err := r.db.ExecContext(ctx, query, l.CenterName, l.Phone, l.DistanceKm, l.BloodType, l.UnitsAvailable,
		l.UnitsReserved, dateArray(l.ExpiryDates), l.LastUpdated, l.Location)
	logger.DatabaseResult("INSERT", 1, err)
	return err
}
