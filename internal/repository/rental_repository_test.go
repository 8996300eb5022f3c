package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestRentalRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRentalRepository(db)

	rental := &domain.Rental{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		VehicleID:       uuid.New(),
		StartDate:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		ExpectedEndDate: time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		DailyRate:       decimal.NewFromInt(100),
		TotalAmount:     decimal.NewFromInt(300),
		PenaltyFee:      decimal.Zero,
		Status:          domain.RentalStatusActive,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rentals")).
		WithArgs(
			rental.ID, rental.UserID, rental.VehicleID, rental.StartDate,
			rental.ExpectedEndDate, rental.ActualEndDate, rental.DailyRate,
			rental.TotalAmount, rental.PenaltyFee, rental.Status,
			rental.CreatedAt, rental.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), rental)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRentalRepository(db)

	rentalID := uuid.New()
	accessoryID := uuid.New()
	now := time.Now()

	rentalRows := sqlmock.NewRows([]string{
		"id", "user_id", "vehicle_id", "start_date", "expected_end_date", "actual_end_date",
		"daily_rate", "total_amount", "penalty_fee", "status", "created_at", "updated_at",
	}).AddRow(
		rentalID.String(), uuid.NewString(), uuid.NewString(),
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		nil, "100", "360", "0", domain.RentalStatusActive, now, now,
	)

	accessoryRows := sqlmock.NewRows([]string{
		"id", "rental_id", "accessory_id", "unit_price", "total_price", "created_at",
	}).AddRow(uuid.NewString(), rentalID.String(), accessoryID.String(), "20", "60", now)

	paymentRows := sqlmock.NewRows([]string{
		"id", "rental_id", "amount", "method", "paid_at", "created_at",
	}).AddRow(uuid.NewString(), rentalID.String(), "150", domain.PaymentMethodCard, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rentals")).
		WithArgs(rentalID).
		WillReturnRows(rentalRows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM rental_accessories")).
		WithArgs(rentalID).
		WillReturnRows(accessoryRows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM payments")).
		WithArgs(rentalID).
		WillReturnRows(paymentRows)

	rental, err := repo.GetByID(context.Background(), rentalID)

	assert.NoError(t, err)
	assert.Equal(t, rentalID, rental.ID)
	assert.True(t, rental.TotalAmount.Equal(decimal.NewFromInt(360)))
	assert.Len(t, rental.Accessories, 1)
	assert.Equal(t, accessoryID, rental.Accessories[0].AccessoryID)
	assert.Len(t, rental.Payments, 1)
	assert.True(t, rental.TotalPaid().Equal(decimal.NewFromInt(150)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepositoryAddPayment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRentalRepository(db)

	payment := &domain.Payment{
		ID:        uuid.New(),
		RentalID:  uuid.New(),
		Amount:    decimal.NewFromInt(150),
		Method:    domain.PaymentMethodPix,
		PaidAt:    time.Now(),
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(payment.ID, payment.RentalID, payment.Amount, payment.Method, payment.PaidAt, payment.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddPayment(context.Background(), payment)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleRepositoryMarkRented(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVehicleRepository(db)

	vehicleID := uuid.New()

	t.Run("claims an available vehicle", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE vehicles")).
			WithArgs(vehicleID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rented, err := repo.MarkRented(context.Background(), vehicleID)

		assert.NoError(t, err)
		assert.True(t, rented)
	})

	t.Run("reports a lost race for the vehicle", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE vehicles")).
			WithArgs(vehicleID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rented, err := repo.MarkRented(context.Background(), vehicleID)

		assert.NoError(t, err)
		assert.False(t, rented)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
