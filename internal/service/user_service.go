package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lwandle/moneycircles/internal/middleware"
	"github.com/lwandle/moneycircles/internal/savings"
	"github.com/lwandle/moneycircles/internal/storage"
)

// UserService handles the current-user, wallet and savings goal routes.
// The acting user always comes from the authenticated request context.
type UserService struct {
	store   storage.Store
	savings *savings.Service
}

// NewUserService creates a UserService.
func NewUserService(store storage.Store, savingsService *savings.Service) *UserService {
	return &UserService{store: store, savings: savingsService}
}

// Register mounts the user routes.
func (s *UserService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/user", s.handleGetUser)
	mux.HandleFunc("GET /api/wallet", s.handleGetWallet)
	mux.HandleFunc("GET /api/savings", s.handleListGoals)
	mux.HandleFunc("POST /api/savings", s.handleCreateGoal)
	mux.HandleFunc("POST /api/savings/{id}/contribute", s.handleContributeGoal)
}

func (s *UserService) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to fetch user", "user_id", userID, "error", err)
		writeError(w, err, "failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *UserService) handleGetWallet(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to fetch wallet", "user_id", userID, "error", err)
		writeError(w, err, "failed to fetch wallet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"balance": user.WalletBalance})
}

// goalResponse is the API projection of a savings goal.
type goalResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	TargetDate    time.Time `json:"targetDate"`
	Status        string    `json:"status"`
}

func (s *UserService) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	goals, err := s.savings.List(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to list savings goals", "user_id", userID, "error", err)
		writeError(w, err, "failed to fetch savings goals")
		return
	}

	responses := make([]goalResponse, len(goals))
	for i, goal := range goals {
		responses[i] = goalResponse{
			ID:            goal.ID,
			UserID:        goal.UserID,
			Name:          goal.Name,
			TargetAmount:  goal.TargetAmount,
			CurrentAmount: goal.CurrentAmount,
			TargetDate:    goal.TargetDate,
			Status:        goal.Status,
		}
	}
	writeJSON(w, http.StatusOK, responses)
}

func (s *UserService) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string    `json:"name"`
		TargetAmount float64   `json:"targetAmount"`
		TargetDate   time.Time `json:"targetDate"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	goal, err := s.savings.Create(r.Context(), userID, savings.CreateInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
	})
	if err != nil {
		writeError(w, err, "invalid goal data")
		return
	}

	writeJSON(w, http.StatusCreated, goalResponse{
		ID:            goal.ID,
		UserID:        goal.UserID,
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate,
		Status:        goal.Status,
	})
}

func (s *UserService) handleContributeGoal(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	goal, err := s.savings.Contribute(r.Context(), goalID, userID, req.Amount)
	if err != nil {
		writeError(w, err, "failed to contribute to goal")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"newTotal": goal.CurrentAmount,
		"status":   goal.Status,
	})
}
