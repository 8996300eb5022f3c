package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/luiizaferreirafonseca/rental-engine/internal/domain"
	"github.com/luiizaferreirafonseca/rental-engine/internal/service"
	customError "github.com/luiizaferreirafonseca/rental-engine/pkg/errors"
	"github.com/luiizaferreirafonseca/rental-engine/pkg/response"
)

type RentalHandler struct {
	rentals     *service.RentalService
	accessories *service.AccessoryService
	payments    *service.PaymentService
	ratings     *service.RatingService
	validator   *validator.Validate
}

func NewRentalHandler(
	rentals *service.RentalService,
	accessories *service.AccessoryService,
	payments *service.PaymentService,
	ratings *service.RatingService,
) *RentalHandler {
	return &RentalHandler{
		rentals:     rentals,
		accessories: accessories,
		payments:    payments,
		ratings:     ratings,
		validator:   validator.New(),
	}
}

// CreateRental handles POST /rentals
func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateRentalRequest
	if !h.decode(w, r, &request) {
		return
	}

	rental, err := h.rentals.Create(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, rental)
}

// CancelRental handles POST /rentals/{rentalId}/cancel
func (h *RentalHandler) CancelRental(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "rentalId")
	if !ok {
		return
	}

	rental, err := h.rentals.Cancel(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, rental)
}

// ExtendRental handles POST /rentals/{rentalId}/extend
func (h *RentalHandler) ExtendRental(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "rentalId")
	if !ok {
		return
	}

	var request domain.ExtendRentalRequest
	if !h.decode(w, r, &request) {
		return
	}

	rental, err := h.rentals.Extend(r.Context(), rentalID, request.NewExpectedEndDate)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, rental)
}

// ReturnRental handles POST /rentals/{rentalId}/return
func (h *RentalHandler) ReturnRental(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "rentalId")
	if !ok {
		return
	}

	rental, err := h.rentals.Return(r.Context(), rentalID, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, rental)
}

// AttachAccessory handles POST /rentals/{rentalId}/accessories
func (h *RentalHandler) AttachAccessory(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "rentalId")
	if !ok {
		return
	}

	var request domain.AttachAccessoryRequest
	if !h.decode(w, r, &request) {
		return
	}

	rental, err := h.accessories.Attach(r.Context(), rentalID, request.AccessoryID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, rental)
}

// DetachAccessory handles DELETE /rentals/{rentalId}/accessories/{accessoryId}
func (h *RentalHandler) DetachAccessory(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "rentalId")
	if !ok {
		return
	}

	accessoryID, ok := pathID(w, r, "accessoryId")
	if !ok {
		return
	}

	rental, err := h.accessories.Detach(r.Context(), rentalID, accessoryID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, rental)
}

// RegisterPayment handles POST /rentals/{rentalId}/payments
func (h *RentalHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "rentalId")
	if !ok {
		return
	}

	var request domain.RegisterPaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	payment, err := h.payments.RegisterPayment(r.Context(), rentalID, request.Amount, request.Method, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, payment)
}

// GetSummary handles GET /rentals/{rentalId}/summary
func (h *RentalHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "rentalId")
	if !ok {
		return
	}

	summary, err := h.payments.GetSummary(r.Context(), rentalID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, summary)
}

// RateRental handles POST /rentals/{rentalId}/rating
func (h *RentalHandler) RateRental(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := pathID(w, r, "rentalId")
	if !ok {
		return
	}

	var request domain.RateRentalRequest
	if !h.decode(w, r, &request) {
		return
	}

	rating, err := h.ratings.Rate(r.Context(), rentalID, request.Score, request.Comment)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, rating)
}

// decode parses and validates the request body; it writes the error
// response itself and reports whether the handler should continue.
func (h *RentalHandler) decode(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return false
	}

	if err := h.validator.Struct(request); err != nil {
		response.BadRequest(w, "request validation failed", err)
		return false
	}

	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	var bizErr *customError.BusinessError
	if errors.As(err, &bizErr) {
		response.BusinessError(w, bizErr)
		return
	}
	response.InternalServerError(w, "unexpected error", err)
}
