package handlers

import (
	"agrotech-backend/internal/auth"
	api_models "agrotech-backend/internal/models"
	db_models "agrotech-backend/internal/models"
	"agrotech-backend/internal/services"
	"agrotech-backend/internal/store"
	"agrotech-backend/pkg/httputil"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// AuthService defines the interface expected from the auth service.
type AuthService interface {
	Register(ctx context.Context, req api_models.RegisterRequest) (string, *db_models.User, error)
	Login(ctx context.Context, username, password string) (string, *db_models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db_models.User, error)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authSvc AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authSvc,
	}
}

func toUserResponse(user *db_models.User) api_models.UserResponse {
	return api_models.UserResponse{ID: user.ID, Username: user.Username}
}

// HandleRegister handles the POST /api/auth/register request.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req api_models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	token, user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		log.Printf("Register handler failed for username %s: %v", req.Username, err)
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists), errors.Is(err, services.ErrEmailAlreadyExists):
			httputil.RespondError(w, http.StatusConflict, err.Error()) // 409
		case errors.Is(err, services.ErrValidation):
			httputil.RespondError(w, http.StatusBadRequest, err.Error()) // 400
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Registration failed due to an internal error") // 500
		}
		return
	}

	resp := api_models.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	}
	httputil.RespondJSON(w, http.StatusCreated, resp) // 201 Created
}

// HandleLogin handles the POST /api/auth/login request.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req api_models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if req.Username == "" || req.Password == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Printf("Login handler failed for username %s: %v", req.Username, err)
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			httputil.RespondError(w, http.StatusUnauthorized, err.Error()) // 401
		default:
			httputil.RespondError(w, http.StatusInternalServerError, "Login failed due to an internal error") // 500
		}
		return
	}

	resp := api_models.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	}
	httputil.RespondJSON(w, http.StatusOK, resp) // 200 OK
}

// HandleMe handles GET /api/auth/me. Requires JwtAuthMiddleware.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.GetClaimsFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httputil.RespondError(w, http.StatusNotFound, "User not found")
			return
		}
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, toUserResponse(user))
}
