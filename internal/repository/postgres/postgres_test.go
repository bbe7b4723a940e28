package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbank-backend/internal/domain"
	"bloodbank-backend/internal/repository"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var requestRowColumns = []string{"id", "recipient_id", "recipient_name", "blood_type", "units_needed", "urgency",
	"hospital_name", "hospital_address", "contact_number", "medical_reason", "status", "request_date",
	"required_by", "notes"}

func TestBloodRequestRepository_RoundTrip(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBloodRequestRepository(db)
	ctx := context.Background()

	in := &domain.BloodRequest{
		RecipientID:     "2",
		RecipientName:   "Sarah Johnson",
		BloodType:       domain.BloodTypeAPos,
		UnitsNeeded:     2,
		Urgency:         domain.RequestUrgencyHigh,
		HospitalName:    "City General Hospital",
		HospitalAddress: "123 Medical Center Dr, City, ST",
		ContactNumber:   "+1 (555) 123-4567",
		MedicalReason:   "Emergency surgery following car accident",
		RequestDate:     time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		RequiredBy:      time.Date(2024, 1, 18, 8, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO blood_requests").
		WithArgs(sqlmock.AnyArg(), in.RecipientID, in.RecipientName, in.BloodType, in.UnitsNeeded, in.Urgency,
			in.HospitalName, in.HospitalAddress, in.ContactNumber, in.MedicalReason, domain.RequestStatusPending,
			in.RequestDate, in.RequiredBy, in.Notes).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(ctx, in))
	require.NotEmpty(t, in.ID)
	assert.Equal(t, domain.RequestStatusPending, in.Status)

	mock.ExpectQuery("SELECT (.+) FROM blood_requests WHERE id = \\$1").
		WithArgs(in.ID).
		WillReturnRows(sqlmock.NewRows(requestRowColumns).AddRow(
			in.ID, in.RecipientID, in.RecipientName, "A+", 2, "high", in.HospitalName, in.HospitalAddress,
			in.ContactNumber, in.MedicalReason, "pending", in.RequestDate, in.RequiredBy, ""))

	out, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out, cmpopts.IgnoreFields(domain.BloodRequest{}, "ID")); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBloodRequestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBloodRequestRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM blood_requests WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	req, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, req)
}

func TestBloodRequestRepository_UpdateStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBloodRequestRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE blood_requests SET status = \\$1 WHERE id = \\$2 AND status = \\$3").
			WithArgs(domain.RequestStatusApproved, "BR-1", domain.RequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(ctx, "BR-1", domain.RequestStatusPending, domain.RequestStatusApproved))
	})

	t.Run("Stale status", func(t *testing.T) {
		mock.ExpectExec("UPDATE blood_requests").
			WithArgs(domain.RequestStatusRejected, "BR-1", domain.RequestStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM blood_requests WHERE id = \\$1").
			WithArgs("BR-1").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("approved"))

		err := repo.UpdateStatus(ctx, "BR-1", domain.RequestStatusPending, domain.RequestStatusRejected)
		var te *domain.InvalidTransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "approved", te.From)
		assert.Equal(t, "rejected", te.To)
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE blood_requests").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM blood_requests").
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		err := repo.UpdateStatus(ctx, "nope", domain.RequestStatusApproved, domain.RequestStatusFulfilled)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Disallowed transition never reaches the database", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, "BR-1", domain.RequestStatusPending, domain.RequestStatusFulfilled)
		assert.True(t, domain.IsInvalidTransition(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBloodRequestRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBloodRequestRepository(db)

	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM blood_requests").
		WithArgs("pending", "").
		WillReturnRows(sqlmock.NewRows(requestRowColumns).
			AddRow("BR-1", "2", "Sarah", "A+", 2, "high", "H", "", "c", "m", "pending", now, now, "").
			AddRow("BR-2", "3", "Mike", "O-", 1, "critical", "H", "", "c", "m", "pending", now, now, ""))

	reqs, err := repo.List(context.Background(), repository.RequestFilter{Status: domain.RequestStatusPending})
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, domain.RequestUrgencyCritical, reqs[1].Urgency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	cols := []string{"id", "email", "name", "role", "phone", "address", "blood_type", "date_of_birth", "created_at"}

	t.Run("GetByEmail", func(t *testing.T) {
		dob := time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
			WithArgs("john.smith@email.com").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("1", "john.smith@email.com", "John Smith", "donor", "", "", "O+", dob, time.Now()))

		u, err := repo.GetByEmail(ctx, "  john.smith@email.com ")
		require.NoError(t, err)
		assert.Equal(t, domain.UserRoleDonor, u.Role)
		require.NotNil(t, u.DateOfBirth)
		assert.True(t, dob.Equal(*u.DateOfBirth))
	})

	t.Run("GetByID null date of birth", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
			WithArgs("demo-admin").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("demo-admin", "admin@bloodbank.com", "Admin User", "admin", "", "", "A+", nil, time.Now()))

		u, err := repo.GetByID(ctx, "demo-admin")
		require.NoError(t, err)
		assert.Nil(t, u.DateOfBirth)
	})

	t.Run("Create duplicate email", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, &domain.User{Email: "dup@test.com", Name: "Dup", Role: domain.UserRoleDonor})
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("List by role", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE").
			WithArgs("recipient").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("2", "sarah@email.com", "Sarah", "recipient", "", "", "A+", nil, time.Now()))

		users, err := repo.List(ctx, domain.UserRoleRecipient)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_ExpiryDates(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInventoryRepository(db)
	ctx := context.Background()
	updated := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM blood_inventory").
		WillReturnRows(sqlmock.NewRows([]string{"blood_type", "units_available", "units_reserved", "expiry_dates", "last_updated", "location"}).
			AddRow("A+", 25, 5, "{2024-02-20,2024-02-15}", updated, "Main Storage").
			AddRow("AB-", 3, 1, "{}", updated, "Main Storage"))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []time.Time{
		time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
	}, records[0].ExpiryDates)
	assert.Empty(t, records[1].ExpiryDates)

	mock.ExpectExec("INSERT INTO blood_inventory").
		WithArgs("O-", 6, 2, "{\"2024-02-15\",\"2024-02-19\"}", updated, "Main Storage").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Create(ctx, &domain.BloodInventory{
		BloodType:      domain.BloodTypeONeg,
		UnitsAvailable: 6,
		UnitsReserved:  2,
		ExpiryDates: []time.Time{
			time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC),
		},
		LastUpdated: updated,
		Location:    "Main Storage",
	})
	require.NoError(t, err)

	err = repo.Create(ctx, &domain.BloodInventory{BloodType: domain.BloodTypeONeg, UnitsAvailable: -1})
	assert.True(t, domain.IsValidation(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock := newMock(t)
	repo := NewNotificationRepository(db)

	mock.ExpectExec("UPDATE notifications SET is_read = TRUE").
		WithArgs("n1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.MarkAsRead(context.Background(), "n1", "u1"))

	mock.ExpectExec("UPDATE notifications SET is_read = TRUE").
		WithArgs("n1", "someone-else").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.MarkAsRead(context.Background(), "n1", "someone-else"), domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
