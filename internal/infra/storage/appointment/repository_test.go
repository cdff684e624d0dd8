package appointment

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/VetBookingService/internal/domain"
	"github.com/m04kA/VetBookingService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func newAppointment() *domain.Appointment {
	return &domain.Appointment{
		VetID:           7,
		UserID:          100,
		Date:            time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:35",
		DurationMinutes: 30,
		Type:            domain.TypePhysical,
		Status:          domain.StatusPending,
		Fee:             45,
		Customer: domain.CustomerInfo{
			Name:       "Anna",
			Phone:      "+70000000000",
			Email:      "anna@example.com",
			PetName:    "Barsik",
			PetSpecies: "cat",
		},
	}
}

func TestCreateReturnsTimestamps(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO appointments (.+) ON CONFLICT \\(vet_id, appointment_date, start_time\\) WHERE status <> 'cancelled' DO NOTHING RETURNING created_at, updated_at").
		WithArgs(sqlmock.AnyArg(), int64(7), int64(100), "2026-10-20", "09:35", 30, "physical", "pending",
			45.0, false, "Anna", "+70000000000", "anna@example.com", "Barsik", "cat", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	created, err := repo.Create(context.Background(), newAppointment())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSlotTakenWhenNothingInserted(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := repo.Create(context.Background(), newAppointment())

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSlotTakenOnUniqueViolation(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO appointments").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, err := repo.Create(context.Background(), newAppointment())

	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreateOtherError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO appointments").WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), newAppointment())

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotTaken)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id = \\$1").
		WithArgs(id.String()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetByIDScansRow(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()
	created := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(selectColumns).AddRow(
		id.String(), int64(7), int64(100), time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), []byte("09:35:00"),
		30, "online", "confirmed", []byte("45.50"), true, "cs_test_1",
		"Anna", "+7", "a@example.com", "Barsik", "cat", nil,
		nil, nil, created, created,
	)
	mock.ExpectQuery("SELECT (.+) FROM appointments WHERE id = \\$1").
		WithArgs(id.String()).
		WillReturnRows(rows)

	appt, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, appt.ID)
	assert.Equal(t, types.TimeString("09:35"), appt.StartTime)
	assert.Equal(t, domain.TypeOnline, appt.Type)
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.Equal(t, 45.5, appt.Fee)
	require.NotNil(t, appt.PaymentReference)
	assert.Equal(t, "cs_test_1", *appt.PaymentReference)
	assert.Nil(t, appt.Customer.Notes)
	assert.Nil(t, appt.CancelledAt)
}

func TestListOccupiedTimesFiltersActiveStatuses(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT start_time FROM appointments WHERE appointment_date = \\$1 AND status IN \\(\\$2,\\$3,\\$4\\) AND vet_id = \\$5").
		WithArgs("2026-10-20", "pending", "confirmed", "completed", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"start_time"}).
			AddRow([]byte("09:00:00")).
			AddRow([]byte("10:10:00")))

	occupied, err := repo.ListOccupiedTimes(context.Background(), 7, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "10:10"}, occupied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelOnlyActive(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE appointments SET status = \\$1, cancellation_reason = \\$2, cancelled_at = NOW\\(\\), updated_at = NOW\\(\\) WHERE id = \\$3 AND status IN \\(\\$4,\\$5\\)").
		WithArgs("cancelled", "changed plans", id.String(), "pending", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), id, "changed plans"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelNoRowsIsStatusConflict(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE appointments").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrStatusConflict)
}

func TestConfirmPayment(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE appointments SET status = \\$1, payment_status = \\$2, payment_reference = \\$3").
		WithArgs("confirmed", true, "cs_test_9", id.String(), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ConfirmPayment(context.Background(), id, "cs_test_9"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusGuardsCurrentStatus(t *testing.T) {
	repo, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec("UPDATE appointments SET status = \\$1, updated_at = NOW\\(\\) WHERE id = \\$2 AND status IN \\(\\$3\\)").
		WithArgs("completed", id.String(), "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), id, []domain.AppointmentStatus{domain.StatusConfirmed}, domain.StatusCompleted)

	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelStalePending(t *testing.T) {
	repo, mock := newRepo(t)
	cutoff := time.Date(2026, 10, 16, 7, 30, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE appointments SET (.+) WHERE payment_status = \\$3 AND status = \\$4 AND created_at < \\$5").
		WithArgs("cancelled", domain.ReasonPaymentTimeout, false, "pending", cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.CancelStalePending(context.Background(), cutoff, domain.ReasonPaymentTimeout)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
