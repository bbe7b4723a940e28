package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
)

type bloodRequestRepository struct {
	db *sql.DB
}

func NewBloodRequestRepository(db *sql.DB) repository.BloodRequestRepository {
	return &bloodRequestRepository{db: db}
}

const requestColumns = `id, recipient_id, recipient_name, blood_type, units_needed, urgency, hospital_name,
	hospital_address, contact_number, medical_reason, status, request_date, required_by, notes`

func scanRequest(row rowScanner) (*domain.BloodRequest, error) {
	req := &domain.BloodRequest{}
	err := row.Scan(&req.ID, &req.RecipientID, &req.RecipientName, &req.BloodType, &req.UnitsNeeded, &req.Urgency,
		&req.HospitalName, &req.HospitalAddress, &req.ContactNumber, &req.MedicalReason, &req.Status,
		&req.RequestDate, &req.RequiredBy, &req.Notes)
	if err != nil {
		return nil, err
	}
	req.RequestDate = req.RequestDate.UTC()
	req.RequiredBy = req.RequiredBy.UTC()
	return req, nil
}

func (r *bloodRequestRepository) Create(ctx context.Context, req *domain.BloodRequest) error {
	logger.EnterMethod("bloodRequestRepository.Create", "recipientID", req.RecipientID, "bloodType", req.BloodType)

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = domain.RequestStatusPending
	}
	if req.RequestDate.IsZero() {
		req.RequestDate = time.Now().UTC()
	}

	query := `INSERT INTO blood_requests (` + requestColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	logger.DatabaseCall("INSERT", "blood_requests", "requestID", req.ID)
	_, err := r.db.ExecContext(ctx, query, req.ID, req.RecipientID, req.RecipientName, req.BloodType, req.UnitsNeeded,
		req.Urgency, req.HospitalName, req.HospitalAddress, req.ContactNumber, req.MedicalReason, req.Status,
		req.RequestDate, req.RequiredBy, req.Notes)
	logger.DatabaseResult("INSERT", 1, err, "requestID", req.ID)

	if err != nil {
		logger.ExitMethodWithError("bloodRequestRepository.Create", err, "requestID", req.ID)
		return err
	}
	logger.ExitMethod("bloodRequestRepository.Create", "requestID", req.ID)
	return nil
}

func (r *bloodRequestRepository) GetByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM blood_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return req, nil
}

func (r *bloodRequestRepository) List(ctx context.Context, filter repository.RequestFilter) ([]domain.BloodRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM blood_requests
	          WHERE ($1::text = '' OR status = $1) AND ($2::text = '' OR recipient_id = $2)
	          ORDER BY request_date, id`
	logger.DatabaseCall("SELECT", "blood_requests", "status", filter.Status, "recipientID", filter.RecipientID)
	rows, err := r.db.QueryContext(ctx, query, string(filter.Status), filter.RecipientID)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.BloodRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	logger.DatabaseResult("SELECT", int64(len(reqs)), rows.Err())
	return reqs, rows.Err()
}

func (r *bloodRequestRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) error {
	if err := domain.ValidateRequestTransition(from, to); err != nil {
		return err
	}

	query := `UPDATE blood_requests SET status = $1 WHERE id = $2 AND status = $3`
	logger.DatabaseCall("UPDATE", "blood_requests", "requestID", id, "from", from, "to", to)
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

	var current domain.RequestStatus
	err = r.db.QueryRowContext(ctx, `SELECT status FROM blood_requests WHERE id = $1`, id).Scan(&current)
	if err != nil {
		return notFound(err)
	}
	return &domain.InvalidTransitionError{Entity: "blood request", From: string(current), To: string(to)}
}
