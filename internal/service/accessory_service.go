package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
	"github.com/luiizaferreirafonseca/rental-engine/internal/repository"
	customError "github.com/luiizaferreirafonseca/rental-engine/pkg/errors"
	"github.com/luiizaferreirafonseca/rental-engine/pkg/pricing"
)

// AccessoryService attaches and detaches accessory charges on a rental.
// Surcharges are always priced over the contract's current date range,
// never the range in effect when the accessory was attached.
type AccessoryService struct {
	RentalRepo    repository.RentalRepository
	AccessoryRepo repository.AccessoryRepository
	Locks         *ContractLocker
	redis         *redis.Client
}

func NewAccessoryService(
	rentalRepo repository.RentalRepository,
	accessoryRepo repository.AccessoryRepository,
	locks *ContractLocker,
	redis *redis.Client,
) *AccessoryService {
	return &AccessoryService{
		RentalRepo:    rentalRepo,
		AccessoryRepo: accessoryRepo,
		Locks:         locks,
		redis:         redis,
	}
}

// Attach links an accessory to the rental and adds its surcharge to the
// contract total. An accessory can be linked at most once per rental.
func (s *AccessoryService) Attach(ctx context.Context, rentalID, accessoryID uuid.UUID) (*domain.Rental, error) {
	unlock := s.Locks.Lock(rentalID)
	defer unlock()

	rental, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if rental.Status == domain.RentalStatusCanceled {
		return nil, customError.WrapInvalidTransition("attach an accessory to", rental.Status)
	}

	if rental.AccessoryLink(accessoryID) != nil {
		return nil, customError.WrapAlreadyLinked(accessoryID.String())
	}

	accessory, err := s.AccessoryRepo.GetByID(ctx, accessoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapAccessoryNotFound(accessoryID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	days := pricing.EffectiveDays(rental.StartDate, rental.ExpectedEndDate)
	surcharge := pricing.LineTotal(accessory.DailyRate, days)

	link := &domain.RentalAccessory{
		ID:          uuid.New(),
		RentalID:    rental.ID,
		AccessoryID: accessory.ID,
		UnitPrice:   accessory.DailyRate,
		TotalPrice:  surcharge,
		CreatedAt:   time.Now(),
	}

	rental.Accessories = append(rental.Accessories, link)
	rental.TotalAmount = rental.TotalAmount.Add(surcharge)

	if err = s.RentalRepo.Update(ctx, rental); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateBalance(ctx, s.redis, rentalID)

	return rental, nil
}

// Detach removes an accessory link and subtracts its charge from the
// contract total. The refund is recomputed over the current dates, not
// the dates in effect at attach time.
func (s *AccessoryService) Detach(ctx context.Context, rentalID, accessoryID uuid.UUID) (*domain.Rental, error) {
	unlock := s.Locks.Lock(rentalID)
	defer unlock()

	rental, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	link := rental.AccessoryLink(accessoryID)
	if link == nil {
		return nil, customError.WrapNotLinked(accessoryID.String())
	}

	days := pricing.EffectiveDays(rental.StartDate, rental.ExpectedEndDate)
	refund := pricing.LineTotal(link.UnitPrice, days)

	rental.TotalAmount = rental.TotalAmount.Sub(refund)

	remaining := make([]*domain.RentalAccessory, 0, len(rental.Accessories)-1)
	for _, l := range rental.Accessories {
		if l.AccessoryID != accessoryID {
			remaining = append(remaining, l)
		}
	}
	rental.Accessories = remaining

	if err = s.RentalRepo.Update(ctx, rental); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateBalance(ctx, s.redis, rentalID)

	return rental, nil
}

func (s *AccessoryService) getRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error) {
	rental, err := s.RentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRentalNotFound(rentalID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return rental, nil
}
