package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/logger"
	"bloodbank-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, role, phone, address, blood_type, date_of_birth, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var dob sql.NullTime
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Phone, &u.Address, &u.BloodType, &dob, &u.CreatedAt); err != nil {
		return nil, err
	}
	if dob.Valid {
		d := dob.Time.UTC()
		u.DateOfBirth = &d
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	logger.EnterMethod("userRepository.Create", "email", u.Email, "role", u.Role)

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	var dob sql.NullTime
	if u.DateOfBirth != nil {
		dob = sql.NullTime{Time: *u.DateOfBirth, Valid: true}
	}

	query := `INSERT INTO users (` + userColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	logger.DatabaseCall("INSERT", "users", "userID", u.ID)
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.Name, u.Role, u.Phone, u.Address, u.BloodType, dob, u.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "userID", u.ID)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		err = &domain.ValidationError{Field: "email", Message: "is already registered"}
	}
	if err != nil {
		logger.ExitMethodWithError("userRepository.Create", err, "email", u.Email)
		return err
	}
	logger.ExitMethod("userRepository.Create", "userID", u.ID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, strings.TrimSpace(email)))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ($1::text = '' OR role = $1) ORDER BY created_at, id`
	logger.DatabaseCall("SELECT", "users", "role", role)
	rows, err := r.db.QueryContext(ctx, query, string(role))
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	logger.DatabaseResult("SELECT", int64(len(users)), rows.Err())
	return users, rows.Err()
}
