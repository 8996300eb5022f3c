package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
)

type ratingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, rental_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		rating.ID,
		rating.RentalID,
		rating.Score,
		rating.Comment,
		rating.CreatedAt,
	)

	return err
}

func (r *ratingRepository) GetByRentalID(ctx context.Context, rentalID uuid.UUID) (*domain.Rating, error) {
	query := `
		SELECT id, rental_id, score, comment, created_at
		FROM ratings
		WHERE rental_id = $1
	`

	var rating domain.Rating
	err := r.db.GetContext(ctx, &rating, query, rentalID)
	if err != nil {
		return nil, err
	}

	return &rating, nil
}
