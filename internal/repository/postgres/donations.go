package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
)

type donationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) repository.DonationRepository {
	return &donationRepository{db: db}
}

const donationColumns = `id, donor_id, donor_name, blood_type, units_collected, donation_date, location,
	status, next_eligible_date, health_checked, notes`

func scanDonation(row rowScanner) (*domain.DonationRecord, error) {
	d := &domain.DonationRecord{}
	var next sql.NullTime
	err := row.Scan(&d.ID, &d.DonorID, &d.DonorName, &d.BloodType, &d.UnitsCollected, &d.DonationDate,
		&d.Location, &d.Status, &next, &d.HealthChecked, &d.Notes)
	if err != nil {
		return nil, err
	}
	d.DonationDate = d.DonationDate.UTC()
	if next.Valid {
		d.NextEligibleDate = next.Time.UTC()
	}
	return d, nil
}

func (r *donationRepository) Create(ctx context.Context, d *domain.DonationRecord) error {
	logger.EnterMethod("donationRepository.Create", "donorID", d.DonorID, "date", d.DonationDate)

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Status == "" {
		d.Status = domain.DonationStatusScheduled
	}
	var next sql.NullTime
	if !d.NextEligibleDate.IsZero() {
		next = sql.NullTime{Time: d.NextEligibleDate, Valid: true}
	}

	query := `INSERT INTO donations (` + donationColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	logger.DatabaseCall("INSERT", "donations", "donationID", d.ID)
	_, err := r.db.ExecContext(ctx, query, d.ID, d.DonorID, d.DonorName, d.BloodType, d.UnitsCollected,
		d.DonationDate, d.Location, d.Status, next, d.HealthChecked, d.Notes)
	logger.DatabaseResult("INSERT", 1, err, "donationID", d.ID)

	if err != nil {
		logger.ExitMethodWithError("donationRepository.Create", err, "donationID", d.ID)
		return err
	}
	logger.ExitMethod("donationRepository.Create", "donationID", d.ID)
	return nil
}

func (r *donationRepository) GetByID(ctx context.Context, id string) (*domain.DonationRecord, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`
	d, err := scanDonation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

func (r *donationRepository) List(ctx context.Context, filter repository.DonationFilter) ([]domain.DonationRecord, error) {
	query := `SELECT ` + donationColumns + ` FROM donations
	          WHERE ($1::text = '' OR donor_id = $1) AND ($2::text = '' OR status = $2)
	          ORDER BY donation_date DESC, id`
	rows, err := r.db.QueryContext(ctx, query, filter.DonorID, string(filter.Status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DonationRecord
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *donationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.DonationStatus) error {
	if err := domain.ValidateDonationTransition(from, to); err != nil {
		return err
	}

	query := `UPDATE donations SET status = $1 WHERE id = $2 AND status = $3`
	logger.DatabaseCall("UPDATE", "donations", "donationID", id, "from", from, "to", to)
	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err)
		return err
	}
	n, err := result.RowsAffected()
	logger.DatabaseResult("UPDATE", n, err)
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var current domain.DonationStatus
	err = r.db.QueryRowContext(ctx, `SELECT status FROM donations WHERE id = $1`, id).Scan(&current)
	if err != nil {
		return notFound(err)
	}
	return &domain.InvalidTransitionError{Entity: "donation", From: string(current), To: string(to)}
}
