package service

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/luiizaferreirafonseca/rental-engine/internal/config"
	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
	"github.com/luiizaferreirafonseca/rental-engine/internal/repository"
	customError "github.com/luiizaferreirafonseca/rental-engine/pkg/errors"
)

// PaymentService records payments against a rental contract. Payments
// are append-only and may never push the paid sum past the contract
// total; the penalty fee is settled outside the ledger and only shows
// up in the balance-due report view.
type PaymentService struct {
	RentalRepo repository.RentalRepository
	Locks      *ContractLocker
	redis      *redis.Client
	config     *config.Config
}

func NewPaymentService(
	rentalRepo repository.RentalRepository,
	locks *ContractLocker,
	redis *redis.Client,
	config *config.Config,
) *PaymentService {
	return &PaymentService{
		RentalRepo: rentalRepo,
		Locks:      locks,
		redis:      redis,
		config:     config,
	}
}

// RegisterPayment appends a payment to the rental's ledger after
// checking the amount against the remaining balance under the contract
// lock, so concurrent registrations cannot overpay.
func (s *PaymentService) RegisterPayment(ctx context.Context, rentalID uuid.UUID, amount decimal.Decimal, method string, now time.Time) (*domain.Payment, error) {
	unlock := s.Locks.Lock(rentalID)
	defer unlock()

	rental, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if rental.Status == domain.RentalStatusCanceled {
		return nil, customError.WrapInvalidTransition("register a payment for", rental.Status)
	}

	if !amount.IsPositive() {
		return nil, customError.WrapInvalidAmount(amount.String())
	}

	remaining := rental.TotalAmount.Sub(rental.TotalPaid())
	if amount.GreaterThan(remaining) {
		return nil, customError.WrapExceedsBalance(amount.String(), remaining.String())
	}

	payment := &domain.Payment{
		ID:        uuid.New(),
		RentalID:  rental.ID,
		Amount:    amount,
		Method:    method,
		PaidAt:    now,
		CreatedAt: time.Now(),
	}

	if err = s.RentalRepo.AddPayment(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	invalidateBalance(ctx, s.redis, rentalID)

	return payment, nil
}

// TotalPaid sums the recorded payments for a rental.
func (s *PaymentService) TotalPaid(ctx context.Context, rentalID uuid.UUID) (decimal.Decimal, error) {
	rental, err := s.getRental(ctx, rentalID)
	if err != nil {
		return decimal.Zero, err
	}
	return rental.TotalPaid(), nil
}

// BalanceDue returns total + penalty - paid, reading through the redis
// cache when possible. This is a lock-free snapshot view.
func (s *PaymentService) BalanceDue(ctx context.Context, rentalID uuid.UUID) (decimal.Decimal, error) {
	if cached, ok := s.cachedBalance(ctx, rentalID); ok {
		return cached, nil
	}

	rental, err := s.getRental(ctx, rentalID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := balanceDue(rental)
	s.cacheBalance(ctx, rentalID, balance)

	return balance, nil
}

// GetSummary composes the report view of a rental: the contract with
// its ledgers, the paid total and the balance due.
func (s *PaymentService) GetSummary(ctx context.Context, rentalID uuid.UUID) (*domain.RentalSummaryResponse, error) {
	rental, err := s.getRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	return &domain.RentalSummaryResponse{
		Rental:     rental,
		TotalPaid:  rental.TotalPaid(),
		BalanceDue: balanceDue(rental),
	}, nil
}

// balanceDue composes the report-level balance. Accessory surcharges are
// already folded into TotalAmount when attached, so only the penalty is
// added on top.
func balanceDue(rental *domain.Rental) decimal.Decimal {
	return rental.TotalAmount.Add(rental.PenaltyFee).Sub(rental.TotalPaid())
}

func (s *PaymentService) cachedBalance(ctx context.Context, rentalID uuid.UUID) (decimal.Decimal, bool) {
	if s.redis == nil {
		return decimal.Zero, false
	}

	raw, err := s.redis.Get(ctx, balanceCacheKey(rentalID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("balance cache read failed for rental %s: %v", rentalID, err)
		}
		return decimal.Zero, false
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}

	return balance, true
}

func (s *PaymentService) cacheBalance(ctx context.Context, rentalID uuid.UUID, balance decimal.Decimal) {
	if s.redis == nil {
		return
	}

	ttl := 24 * time.Hour
	if s.config != nil && s.config.Business.BalanceCacheTTL > 0 {
		ttl = s.config.Business.BalanceCacheTTL
	}

	if err := s.redis.Set(ctx, balanceCacheKey(rentalID), balance.String(), ttl).Err(); err != nil {
		log.Printf("balance cache write failed for rental %s: %v", rentalID, err)
	}
}

func (s *PaymentService) getRental(ctx context.Context, rentalID uuid.UUID) (*domain.Rental, error) {
	rental, err := s.RentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapRentalNotFound(rentalID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return rental, nil
}
