package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lwandle/moneycircles/internal/auth"
	"github.com/lwandle/moneycircles/internal/models"
)

// AuthService handles registration and login.
type AuthService struct {
	authenticator *auth.PasswordAuthenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator *auth.PasswordAuthenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, jwtManager: jwtManager}
}

// Register mounts the auth routes. These are the only routes that do not
// require a token.
func (s *AuthService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
}

// userResponse is the public projection of a user: no password hash.
type userResponse struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	WalletBalance float64   `json:"walletBalance"`
	XPPoints      int       `json:"xpPoints"`
	Level         int       `json:"level"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:            user.ID,
		Username:      user.Username,
		FullName:      user.FullName,
		Email:         user.Email,
		WalletBalance: user.WalletBalance,
		XPPoints:      user.XPPoints,
		Level:         user.Level,
		CreatedAt:     user.CreatedAt,
	}
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (s *AuthService) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Username, req.FullName, req.Email, req.Password)
	if err != nil {
		slog.Warn("Registration failed", "username", req.Username, "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to issue token", "user_id", user.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "failed to issue token"})
		return
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: toUserResponse(user)})
}

func (s *AuthService) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("Login failed", "username", req.Username)
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "invalid username or password"})
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to issue token", "user_id", user.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "failed to issue token"})
		return
	}

	slog.Info("User logged in", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: toUserResponse(user)})
}
