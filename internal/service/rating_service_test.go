package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
	customError "github.com/luiizaferreirafonseca/rental-engine/pkg/errors"
)

func TestRateRental(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	completedRental := func() *domain.Rental {
		rental := activeRental(100, start, 3)
		rental.Status = domain.RentalStatusCompleted
		return rental
	}

	t.Run("Success - rate a completed rental", func(t *testing.T) {
		rental := completedRental()

		rentalRepo := &MockRentalRepository{}
		ratingRepo := &MockRatingRepository{}
		rentalRepo.On("GetByID", mock.Anything, rental.ID).Return(rental, nil)
		ratingRepo.On("GetByRentalID", mock.Anything, rental.ID).Return(nil, sql.ErrNoRows)
		ratingRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Rating) bool {
			return r.RentalID == rental.ID && r.Score == 4
		})).Return(nil)

		service := NewRatingService(rentalRepo, ratingRepo, NewContractLocker())

		rating, err := service.Rate(context.Background(), rental.ID, 4, "smooth rental")

		assert.NoError(t, err)
		assert.Equal(t, 4, rating.Score)
		assert.Equal(t, "smooth rental", rating.Comment)
		ratingRepo.AssertExpectations(t)
	})

	t.Run("Failure - rental still active", func(t *testing.T) {
		rental := activeRental(100, start, 3)

		rentalRepo := &MockRentalRepository{}
		rentalRepo.On("GetByID", mock.Anything, rental.ID).Return(rental, nil)

		service := NewRatingService(rentalRepo, &MockRatingRepository{}, NewContractLocker())

		_, err := service.Rate(context.Background(), rental.ID, 5, "")

		assert.ErrorIs(t, err, customError.ErrRentalNotFinished)
	})

	t.Run("Failure - canceled rental cannot be rated", func(t *testing.T) {
		rental := activeRental(100, start, 3)
		rental.Status = domain.RentalStatusCanceled

		rentalRepo := &MockRentalRepository{}
		rentalRepo.On("GetByID", mock.Anything, rental.ID).Return(rental, nil)

		service := NewRatingService(rentalRepo, &MockRatingRepository{}, NewContractLocker())

		_, err := service.Rate(context.Background(), rental.ID, 5, "")

		assert.ErrorIs(t, err, customError.ErrRentalNotFinished)
	})

	t.Run("Failure - second rating rejected", func(t *testing.T) {
		rental := completedRental()
		existing := &domain.Rating{ID: uuid.New(), RentalID: rental.ID, Score: 5}

		rentalRepo := &MockRentalRepository{}
		ratingRepo := &MockRatingRepository{}
		rentalRepo.On("GetByID", mock.Anything, rental.ID).Return(rental, nil)
		ratingRepo.On("GetByRentalID", mock.Anything, rental.ID).Return(existing, nil)

		service := NewRatingService(rentalRepo, ratingRepo, NewContractLocker())

		_, err := service.Rate(context.Background(), rental.ID, 3, "")

		assert.ErrorIs(t, err, customError.ErrAlreadyRated)
	})

	t.Run("Failure - score out of bounds", func(t *testing.T) {
		service := NewRatingService(&MockRentalRepository{}, &MockRatingRepository{}, NewContractLocker())

		for _, score := range []int{0, 6, -1} {
			_, err := service.Rate(context.Background(), uuid.New(), score, "")
			assert.ErrorIs(t, err, customError.ErrInvalidScore, "score %d must be rejected", score)
		}
	})

	t.Run("Failure - rental not found", func(t *testing.T) {
		rentalRepo := &MockRentalRepository{}
		rentalRepo.On("GetByID", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)

		service := NewRatingService(rentalRepo, &MockRatingRepository{}, NewContractLocker())

		_, err := service.Rate(context.Background(), uuid.New(), 4, "")

		assert.ErrorIs(t, err, customError.ErrRentalNotFound)
	})
}
