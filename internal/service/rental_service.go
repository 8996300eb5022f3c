package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/luiizaferreirafonseca/rental-engine/internal/config"
	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
	"github.com/luiizaferreirafonseca/rental-engine/internal/repository"
	customError "github.com/luiizaferreirafonseca/rental-engine/pkg/errors"
	"github.com/luiizaferreirafonseca/rental-engine/pkg/pricing"
)

// RentalService owns the rental contract state machine: create, cancel,
// extend and return. Status only ever moves active -> completed or
// active -> canceled; both are terminal.
type RentalService struct {
	RentalRepo  repository.RentalRepository
	VehicleRepo repository.VehicleRepository
	Locks       *ContractLocker
	redis       *redis.Client
	config      *config.Config
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	locks *ContractLocker,
	redis *redis.Client,
	config *config.Config,
) *RentalService {
	return &RentalService{
		RentalRepo:  rentalRepo,
		VehicleRepo: vehicleRepo,
		Locks:       locks,
		redis:       redis,
		config:      config,
	}
}

// Create opens a new rental contract. The vehicle is claimed through a
// compare-and-swap on its availability flag; when the claim fails the
// whole creation fails, and when persistence fails the claim is undone.
func (s *RentalService) Create(ctx context.Context, request *domain.CreateRentalRequest) (*domain.Rental, error) {
	if request.UserID == uuid.Nil {
		return nil, customError.WrapInvalidRequest("user_id is required")
	}
	if request.VehicleID == uuid.Nil {
		return nil, customError.WrapInvalidRequest("vehicle_id is required")
	}
	if request.ExpectedEndDate.IsZero() {
		return nil, customError.WrapInvalidRequest("expected_end_date is required")
	}

	startDate := request.StartDate
	if startDate.IsZero() {
		startDate = time.Now()
	}

	// Strictly after: same-day contracts are rejected at creation even
	// though pricing floors the day count at 1 elsewhere.
	if !request.ExpectedEndDate.After(startDate) {
		return nil, customError.WrapInvalidDateRange("expected end date must be strictly after start date")
	}

	vehicle, err := s.VehicleRepo.GetByID(ctx, request.VehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapVehicleNotFound(request.VehicleID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	rented, err := s.VehicleRepo.MarkRented(ctx, vehicle.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if !rented {
		return nil, customError.WrapVehicleUnavailable(vehicle.ID.String())
	}

	days := pricing.EffectiveDays(startDate, request.ExpectedEndDate)
	now := time.Now()

	rental := &domain.Rental{
		ID:              uuid.New(),
		UserID:          request.UserID,
		VehicleID:       vehicle.ID,
		StartDate:       startDate,
		ExpectedEndDate: request.ExpectedEndDate,
		DailyRate:       vehicle.DailyRate,
		TotalAmount:     pricing.LineTotal(vehicle.DailyRate, days),
		PenaltyFee:      decimal.Zero,
		Status:          domain.RentalStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = s.RentalRepo.Create(ctx, rental); err != nil {
		// Undo the availability claim so the vehicle is not stranded.
		_ = s.VehicleRepo.MarkAvailable(ctx, vehicle.ID)
		return nil, customError.WrapDatabaseError(err)
	}

	return rental, nil
}

// Cancel moves an active rental to canceled and releases the vehicle.
func (s *RentalService) Cancel(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error) {
	unlock := s.Locks.Lock(rentalID)
	defer unlock()

	rental, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if rental.Status != domain.RentalStatusActive {
		return nil, customError.WrapInvalidTransition("cancel", rental.Status)
	}

	rental.Status = domain.RentalStatusCanceled

	if err = s.RentalRepo.Update(ctx, rental); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err = s.VehicleRepo.MarkAvailable(ctx, rental.VehicleID); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateBalance(ctx, s.redis, rentalID)

	return rental, nil
}

// Extend moves the expected end date of an active rental and reprices
// the contract over the new range: the base total is recomputed from the
// daily rate and every accessory link is recharged over the same days,
// so surcharges survive the extension.
func (s *RentalService) Extend(ctx context.Context, rentalID uuid.UUID, newExpectedEndDate time.Time) (*domain.Rental, error) {
	unlock := s.Locks.Lock(rentalID)
	defer unlock()

	rental, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if rental.Status != domain.RentalStatusActive {
		return nil, customError.WrapInvalidTransition("extend", rental.Status)
	}

	if !newExpectedEndDate.After(rental.StartDate) {
		return nil, customError.WrapInvalidDateRange("new expected end date must be after the rental start date")
	}

	rental.ExpectedEndDate = newExpectedEndDate

	days := pricing.EffectiveDays(rental.StartDate, newExpectedEndDate)
	total := pricing.LineTotal(rental.DailyRate, days)

	for _, link := range rental.Accessories {
		link.TotalPrice = pricing.LineTotal(link.UnitPrice, days)
		total = total.Add(link.TotalPrice)
	}

	rental.TotalAmount = total

	if err = s.RentalRepo.Update(ctx, rental); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateBalance(ctx, s.redis, rentalID)

	return rental, nil
}

// Return completes an active rental. Late returns accrue a penalty of
// one daily rate per day past the expected end; the penalty is set
// exactly once, here.
func (s *RentalService) Return(ctx context.Context, rentalID uuid.UUID, now time.Time) (*domain.Rental, error) {
	unlock := s.Locks.Lock(rentalID)
	defer unlock()

	rental, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if rental.Status != domain.RentalStatusActive {
		return nil, customError.WrapInvalidTransition("return", rental.Status)
	}

	returnedAt := now
	rental.ActualEndDate = &returnedAt

	lateDays := pricing.LateDays(now, rental.ExpectedEndDate)
	rental.PenaltyFee = pricing.LineTotal(rental.DailyRate, lateDays)
	rental.Status = domain.RentalStatusCompleted

	if err = s.RentalRepo.Update(ctx, rental); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err = s.VehicleRepo.MarkAvailable(ctx, rental.VehicleID); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateBalance(ctx, s.redis, rentalID)

	return rental, nil
}

func (s *RentalService) getRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error) {
	rental, err := s.RentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRentalNotFound(rentalID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return rental, nil
}
