package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/attendance"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/cooldown"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	ResetCheckpoint(w http.ResponseWriter, r *http.Request)
	GetCooldown(w http.ResponseWriter, r *http.Request)
	StreamCooldown(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	cooldownService   cooldown.CooldownService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, cooldownService cooldown.CooldownService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		cooldownService:   cooldownService,
	}
}

// Scan implements AttendanceHandler.
func (h *attendanceHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req attendance.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Scan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, fmt.Sprintf("Recorded %s", result.Action), result)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "employeeID is required", nil)
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ResetCheckpoint implements AttendanceHandler.
func (h *attendanceHandlerImpl) ResetCheckpoint(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 || n > 4 {
		response.BadRequest(w, "checkpoint must be between 1 and 4", nil)
		return
	}

	if err := h.attendanceService.ResetCheckpoint(r.Context(), employeeID, n); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checkpoint reset", nil)
}

// GetCooldown implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetCooldown(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	state, err := h.cooldownService.Current(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if state == nil {
		response.Success(w, map[string]interface{}{"active": false})
		return
	}

	response.Success(w, map[string]interface{}{
		"active":            true,
		"session_type":      state.SessionType,
		"remaining_seconds": state.RemainingSeconds,
	})
}

// StreamCooldown implements AttendanceHandler. Streams tick/expiry
// events for one employee as server-sent events until the client
// disconnects.
func (h *attendanceHandlerImpl) StreamCooldown(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, unsubscribe := h.cooldownService.Subscribe(employeeID)
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				slog.Error("Failed to marshal cooldown event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: cooldown\ndata: %s\n\n", payload)
			flusher.Flush()
			if event.Expired {
				return
			}
		}
	}
}
