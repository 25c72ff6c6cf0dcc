package http

import (
	"encoding/json"
	"net/http"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/device"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	DeviceLogin(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService device.AuthService
}

func NewAuthHandler(authService device.AuthService) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
	}
}

// DeviceLogin implements AuthHandler.
func (h *authHandlerImpl) DeviceLogin(w http.ResponseWriter, r *http.Request) {
	var req device.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Device authenticated", result)
}
