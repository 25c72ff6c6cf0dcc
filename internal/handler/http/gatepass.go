package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/gatepass"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/handler/http/response"
)

type GatePassHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	RecordUsage(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
}

type gatePassHandlerImpl struct {
	gatePassService gatepass.GatePassService
}

func NewGatePassHandler(gatePassService gatepass.GatePassService) GatePassHandler {
	return &gatePassHandlerImpl{
		gatePassService: gatePassService,
	}
}

// Create implements GatePassHandler.
func (h *gatePassHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req gatepass.CreatePassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gatePassService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Gate pass created", result)
}

// List implements GatePassHandler.
func (h *gatePassHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id query parameter is required", nil)
		return
	}

	result, err := h.gatePassService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Verify implements GatePassHandler. A verification verdict is a
// successful answer for the kiosk: rejections come back as 200 with
// verified=false rather than an HTTP error, except infra failures.
func (h *gatePassHandlerImpl) Verify(w http.ResponseWriter, r *http.Request) {
	var req gatepass.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gatePassService.Verify(r.Context(), req)
	if err != nil {
		if isVerificationRejection(err) {
			response.Success(w, gatepass.VerifyResponse{
				Verified: false,
				Message:  err.Error(),
			})
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func isVerificationRejection(err error) bool {
	return errors.Is(err, gatepass.ErrPassNotFound) ||
		errors.Is(err, gatepass.ErrPassAlreadyUsed) ||
		errors.Is(err, gatepass.ErrPassExpired) ||
		errors.Is(err, gatepass.ErrPassRevoked)
}

// RecordUsage implements GatePassHandler.
func (h *gatePassHandlerImpl) RecordUsage(w http.ResponseWriter, r *http.Request) {
	passID := chi.URLParam(r, "passID")

	var req gatepass.RecordUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gatePassService.RecordUsage(r.Context(), passID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Usage recorded", result)
}

// Revoke implements GatePassHandler.
func (h *gatePassHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	passID := chi.URLParam(r, "passID")

	result, err := h.gatePassService.Revoke(r.Context(), passID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Gate pass revoked", result)
}
