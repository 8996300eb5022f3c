package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
)

type vehicleRepository struct {
	db *sqlx.DB
}

func NewVehicleRepository(db *sqlx.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query := `
		SELECT id, model, plate, daily_rate, available, created_at
		FROM vehicles
		WHERE id = $1
	`

	var vehicle domain.Vehicle
	err := r.db.GetContext(ctx, &vehicle, query, id)
	if err != nil {
		return nil, err
	}

	return &vehicle, nil
}

// MarkRented flips availability only when the vehicle is still available,
// so two concurrent creations cannot both claim the same vehicle.
func (r *vehicleRepository) MarkRented(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE vehicles
		SET available = false
		WHERE id = $1 AND available = true
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func (r *vehicleRepository) MarkAvailable(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE vehicles
		SET available = true
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
