package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lwandle/moneycircles/internal/circle"
	"github.com/lwandle/moneycircles/internal/middleware"
	"github.com/lwandle/moneycircles/internal/models"
	"github.com/lwandle/moneycircles/internal/view"
)

// CircleService handles circle creation, joins, contributions, and the
// enriched circle read views.
type CircleService struct {
	engine *circle.Engine
	views  *view.Views
}

// NewCircleService creates a CircleService.
func NewCircleService(engine *circle.Engine, views *view.Views) *CircleService {
	return &CircleService{engine: engine, views: views}
}

// Register mounts the circle routes.
func (s *CircleService) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/circles", s.handleList)
	mux.HandleFunc("POST /api/circles", s.handleCreate)
	mux.HandleFunc("POST /api/circles/join", s.handleJoin)
	mux.HandleFunc("GET /api/circles/{id}", s.handleGet)
	mux.HandleFunc("GET /api/circles/{id}/members", s.handleMembers)
	mux.HandleFunc("GET /api/circles/{id}/activities", s.handleActivities)
	mux.HandleFunc("POST /api/circles/{id}/contribute", s.handleContribute)
	mux.HandleFunc("GET /api/circles/{id}/messages", s.handleListMessages)
	mux.HandleFunc("POST /api/circles/{id}/messages", s.handlePostMessage)
}

func (s *CircleService) handleList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	circles, err := s.views.Circles(r.Context(), userID)
	if err != nil {
		slog.Error("Failed to list circles", "user_id", userID, "error", err)
		writeError(w, err, "failed to fetch circles")
		return
	}
	writeJSON(w, http.StatusOK, circles)
}

// circleResponse is the API projection of a bare circle (no enrichment).
type circleResponse struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	TargetAmount          float64   `json:"targetAmount"`
	CurrentAmount         float64   `json:"currentAmount"`
	TargetDate            time.Time `json:"targetDate"`
	ContributionFrequency string    `json:"contributionFrequency"`
	AutoSave              bool      `json:"autoSave"`
	CelebrateMilestones   bool      `json:"celebrateMilestones"`
	CreatedByID           int64     `json:"createdById"`
	CreatedAt             time.Time `json:"createdAt"`
	InviteCode            string    `json:"inviteCode"`
}

func toCircleResponse(c *models.MoneyCircle) circleResponse {
	return circleResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		TargetAmount:          c.TargetAmount,
		CurrentAmount:         c.CurrentAmount,
		TargetDate:            c.TargetDate,
		ContributionFrequency: string(c.ContributionFrequency),
		AutoSave:              c.AutoSave,
		CelebrateMilestones:   c.CelebrateMilestones,
		CreatedByID:           c.CreatedByID,
		CreatedAt:             c.CreatedAt,
		InviteCode:            c.InviteCode,
	}
}

func (s *CircleService) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                  string    `json:"name"`
		TargetAmount          float64   `json:"targetAmount"`
		TargetDate            time.Time `json:"targetDate"`
		ContributionFrequency string    `json:"contributionFrequency"`
		AutoSave              bool      `json:"autoSave"`
		CelebrateMilestones   bool      `json:"celebrateMilestones"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	created, err := s.engine.Create(r.Context(), userID, circle.CreateInput{
		Name:                  req.Name,
		TargetAmount:          req.TargetAmount,
		TargetDate:            req.TargetDate,
		ContributionFrequency: models.ContributionFrequency(req.ContributionFrequency),
		AutoSave:              req.AutoSave,
		CelebrateMilestones:   req.CelebrateMilestones,
	})
	if err != nil {
		writeError(w, err, "invalid circle data")
		return
	}

	writeJSON(w, http.StatusCreated, toCircleResponse(created))
}

func (s *CircleService) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	joined, err := s.engine.JoinByCode(r.Context(), req.Code, userID)
	if err != nil {
		writeError(w, err, "invalid invite code or circle not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":      joined.ID,
		"message": "Successfully joined circle",
	})
}

func (s *CircleService) handleGet(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathID(w, r)
	if !ok {
		return
	}

	details, err := s.views.Circle(r.Context(), circleID)
	if err != nil {
		writeError(w, err, "circle not found")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (s *CircleService) handleMembers(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathID(w, r)
	if !ok {
		return
	}

	userID := middleware.GetUserID(r.Context())
	members, err := s.views.Members(r.Context(), circleID, userID)
	if err != nil {
		slog.Error("Failed to list circle members", "circle_id", circleID, "error", err)
		writeError(w, err, "failed to fetch circle members")
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *CircleService) handleActivities(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathID(w, r)
	if !ok {
		return
	}

	activities, err := s.views.Activities(r.Context(), circleID)
	if err != nil {
		slog.Error("Failed to list circle activities", "circle_id", circleID, "error", err)
		writeError(w, err, "failed to fetch circle activities")
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (s *CircleService) handleContribute(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathID(w, r)
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
	result, err := s.engine.Contribute(r.Context(), circleID, userID, req.Amount)
	if err != nil {
		writeError(w, err, "failed to make contribution")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Contribution successful",
		"newTotal":    result.Member.ContributedAmount,
		"circleTotal": result.Circle.CurrentAmount,
	})
}

func (s *CircleService) handleListMessages(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathID(w, r)
	if !ok {
		return
	}

	messages, err := s.views.Messages(r.Context(), circleID)
	if err != nil {
		slog.Error("Failed to list circle messages", "circle_id", circleID, "error", err)
		writeError(w, err, "failed to fetch messages")
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *CircleService) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	circleID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	userID := middleware.GetUserID(r.Context())
	message, err := s.engine.PostMessage(r.Context(), circleID, userID, req.Content)
	if err != nil {
		writeError(w, err, "failed to send message")
		return
	}

	writeJSON(w, http.StatusCreated, s.views.Message(r.Context(), message))
}
