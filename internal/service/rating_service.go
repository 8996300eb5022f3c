package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
	"github.com/luiizaferreirafonseca/rental-engine/internal/repository"
	customError "github.com/luiizaferreirafonseca/rental-engine/pkg/errors"
)

// RatingService guards the one-rating-per-completed-rental rule.
type RatingService struct {
	RentalRepo repository.RentalRepository
	RatingRepo repository.RatingRepository
	Locks      *ContractLocker
}

func NewRatingService(
	rentalRepo repository.RentalRepository,
	ratingRepo repository.RatingRepository,
	locks *ContractLocker,
) *RatingService {
	return &RatingService{
		RentalRepo: rentalRepo,
		RatingRepo: ratingRepo,
		Locks:      locks,
	}
}

// Rate creates the single rating for a completed rental. Repeat calls
// are rejected, never merged.
func (s *RatingService) Rate(ctx context.Context, rentalID uuid.UUID, score int, comment string) (*domain.Rating, error) {
	if score < 1 || score > 5 {
		return nil, customError.WrapInvalidScore(score)
	}

	unlock := s.Locks.Lock(rentalID)
	defer unlock()

	rental, err := s.RentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRentalNotFound(rentalID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if rental.Status != domain.RentalStatusCompleted {
		return nil, customError.WrapRentalNotFinished(rental.Status)
	}

	existing, err := s.RatingRepo.GetByRentalID(ctx, rentalID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}
	if existing != nil {
		return nil, customError.WrapAlreadyRated(rentalID.String())
	}

	rating := &domain.Rating{
		ID:        uuid.New(),
		RentalID:  rentalID,
		Score:     score,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	if err = s.RatingRepo.Create(ctx, rating); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return rating, nil
}
