package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
)

type rentalRepository struct {
	db *sqlx.DB
}

func NewRentalRepository(db *sqlx.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	query := `
		INSERT INTO rentals (id, user_id, vehicle_id, start_date, expected_end_date, actual_end_date,
			daily_rate, total_amount, penalty_fee, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		rental.ID,
		rental.UserID,
		rental.VehicleID,
		rental.StartDate,
		rental.ExpectedEndDate,
		rental.ActualEndDate,
		rental.DailyRate,
		rental.TotalAmount,
		rental.PenaltyFee,
		rental.Status,
		rental.CreatedAt,
		rental.UpdatedAt,
	)

	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	query := `
		SELECT id, user_id, vehicle_id, start_date, expected_end_date, actual_end_date,
			daily_rate, total_amount, penalty_fee, status, created_at, updated_at
		FROM rentals
		WHERE id = $1
	`

	var rental domain.Rental
	err := r.db.GetContext(ctx, &rental, query, id)
	if err != nil {
		return nil, err
	}

	accessoryQuery := `
		SELECT id, rental_id, accessory_id, unit_price, total_price, created_at
		FROM rental_accessories
		WHERE rental_id = $1
		ORDER BY created_at
	`

	if err = r.db.SelectContext(ctx, &rental.Accessories, accessoryQuery, id); err != nil {
		return nil, err
	}

	paymentQuery := `
		SELECT id, rental_id, amount, method, paid_at, created_at
		FROM payments
		WHERE rental_id = $1
		ORDER BY paid_at
	`

	if err = r.db.SelectContext(ctx, &rental.Payments, paymentQuery, id); err != nil {
		return nil, err
	}

	return &rental, nil
}

func (r *rentalRepository) Update(ctx context.Context, rental *domain.Rental) error {
	query := `
		UPDATE rentals
		SET start_date = $2, expected_end_date = $3, actual_end_date = $4,
			total_amount = $5, penalty_fee = $6, status = $7, updated_at = $8
		WHERE id = $1
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, query,
		rental.ID,
		rental.StartDate,
		rental.ExpectedEndDate,
		rental.ActualEndDate,
		rental.TotalAmount,
		rental.PenaltyFee,
		rental.Status,
		time.Now(),
	)
	if err != nil {
		return err
	}

	// Accessory links are replaced wholesale so attach/detach/extend all
	// persist through the same path.
	if _, err = tx.ExecContext(ctx, `DELETE FROM rental_accessories WHERE rental_id = $1`, rental.ID); err != nil {
		return err
	}

	linkQuery := `
		INSERT INTO rental_accessories (id, rental_id, accessory_id, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, link := range rental.Accessories {
		_, err = tx.ExecContext(ctx, linkQuery,
			link.ID,
			link.RentalID,
			link.AccessoryID,
			link.UnitPrice,
			link.TotalPrice,
			link.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *rentalRepository) AddPayment(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, rental_id, amount, method, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.RentalID,
		payment.Amount,
		payment.Method,
		payment.PaidAt,
		payment.CreatedAt,
	)

	return err
}

func (r *rentalRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]*domain.Rental, error) {
	query := `
		SELECT id, user_id, vehicle_id, start_date, expected_end_date, actual_end_date,
			daily_rate, total_amount, penalty_fee, status, created_at, updated_at
		FROM rentals
		WHERE status = 'active' AND expected_end_date < $1
		ORDER BY expected_end_date
	`

	var rentals []*domain.Rental
	err := r.db.SelectContext(ctx, &rentals, query, asOf)
	if err != nil {
		return nil, err
	}

	return rentals, nil
}
