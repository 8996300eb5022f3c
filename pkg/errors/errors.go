package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrInvalidTransition  = errors.New("operation not allowed in current rental status")
	ErrRentalNotFound     = errors.New("rental not found")
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrAccessoryNotFound  = errors.New("accessory not found")
	ErrAlreadyLinked      = errors.New("accessory already linked to rental")
	ErrNotLinked          = errors.New("accessory not linked to rental")
	ErrInvalidAmount      = errors.New("payment amount must be positive")
	ErrExceedsBalance     = errors.New("payment exceeds remaining balance")
	ErrInvalidScore       = errors.New("rating score must be between 1 and 5")
	ErrRentalNotFinished  = errors.New("rental is not completed")
	ErrAlreadyRated       = errors.New("rental already rated")
	ErrVehicleUnavailable = errors.New("vehicle is not available")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeInvalidDateRange   = "INVALID_DATE_RANGE"
	ErrCodeInvalidTransition  = "INVALID_TRANSITION"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyLinked      = "ACCESSORY_ALREADY_LINKED"
	ErrCodeNotLinked          = "ACCESSORY_NOT_LINKED"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeExceedsBalance     = "EXCEEDS_BALANCE"
	ErrCodeInvalidScore       = "INVALID_SCORE"
	ErrCodeRentalNotFinished  = "RENTAL_NOT_FINISHED"
	ErrCodeAlreadyRated       = "ALREADY_RATED"
	ErrCodeVehicleUnavailable = "VEHICLE_UNAVAILABLE"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeCacheError         = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapInvalidRequest(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRequest,
		reason,
		ErrInvalidRequest,
	)
}

func WrapInvalidDateRange(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		reason,
		ErrInvalidDateRange,
	)
}

func WrapInvalidTransition(operation, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTransition,
		fmt.Sprintf("cannot %s a rental with status %s", operation, status),
		ErrInvalidTransition,
	)
}

func WrapRentalNotFound(rentalID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("Rental with ID %s not found", rentalID),
		ErrRentalNotFound,
	)
}

func WrapVehicleNotFound(vehicleID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("Vehicle with ID %s not found", vehicleID),
		ErrVehicleNotFound,
	)
}

func WrapAccessoryNotFound(accessoryID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("Accessory with ID %s not found", accessoryID),
		ErrAccessoryNotFound,
	)
}

func WrapAlreadyLinked(accessoryID string) *BusinessError {
	return NewBusinessError(
		ErrCodeAlreadyLinked,
		fmt.Sprintf("Accessory %s is already linked to this rental", accessoryID),
		ErrAlreadyLinked,
	)
}

func WrapNotLinked(accessoryID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotLinked,
		fmt.Sprintf("Accessory %s is not linked to this rental", accessoryID),
		ErrNotLinked,
	)
}

func WrapInvalidAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidAmount,
	)
}

func WrapExceedsBalance(amount, balance string) *BusinessError {
	return NewBusinessError(
		ErrCodeExceedsBalance,
		fmt.Sprintf("Payment of %s exceeds remaining balance of %s", amount, balance),
		ErrExceedsBalance,
	)
}

func WrapInvalidScore(score int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidScore,
		fmt.Sprintf("Invalid rating score: %d", score),
		ErrInvalidScore,
	)
}

func WrapRentalNotFinished(status string) *BusinessError {
	return NewBusinessError(
		ErrCodeRentalNotFinished,
		fmt.Sprintf("Rental cannot be rated while status is %s", status),
		ErrRentalNotFinished,
	)
}

func WrapAlreadyRated(rentalID string) *BusinessError {
	return NewBusinessError(
		ErrCodeAlreadyRated,
		fmt.Sprintf("Rental %s has already been rated", rentalID),
		ErrAlreadyRated,
	)
}

func WrapVehicleUnavailable(vehicleID string) *BusinessError {
	return NewBusinessError(
		ErrCodeVehicleUnavailable,
		fmt.Sprintf("Vehicle %s is not available for rental", vehicleID),
		ErrVehicleUnavailable,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
