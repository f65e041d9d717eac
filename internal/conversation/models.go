package conversation

import (
	"encoding/json"
	"time"

	"github.com/fdg312/fitcoach/internal/plangen"
	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
)

type StartResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Step      string    `json:"step"`
	Message   string    `json:"message"`
}

type MessageRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Content   string    `json:"content"`
}

type MessageResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	// Field the message was matched against, пустое для follow-up ответов.
	Field    string        `json:"field,omitempty"`
	Value    string        `json:"value,omitempty"`
	Step     string        `json:"step,omitempty"`
	Complete bool          `json:"complete"`
	Message  string        `json:"message"`
	Plan     *PlanResponse `json:"plan,omitempty"`
}

type PlanResponse struct {
	UserID       uuid.UUID            `json:"user_id"`
	PlanID       uuid.UUID            `json:"plan_id"`
	DailyTargets plangen.DailyTargets `json:"daily_targets"`
	DietPlan     json.RawMessage      `json:"diet_plan"`
	WorkoutPlan  json.RawMessage      `json:"workout_plan"`
	Explanation  string               `json:"explanation"`
}

type SessionResponse struct {
	ID          uuid.UUID      `json:"id"`
	CurrentStep string         `json:"current_step"`
	IsComplete  bool           `json:"is_complete"`
	Profile     map[string]any `json:"profile"`
	UserID      *uuid.UUID     `json:"user_id,omitempty"`
	PlanID      *uuid.UUID     `json:"plan_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type MessageDTO struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ListMessagesResponse struct {
	Messages []MessageDTO `json:"messages"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func messageToDTO(msg storage.ConversationMessage) MessageDTO {
	return MessageDTO{
		ID:        msg.ID,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func sessionToDTO(session *storage.Session) *SessionResponse {
	collected := make(map[string]any)
	if len(session.Collected) > 0 {
		_ = json.Unmarshal(session.Collected, &collected)
	}
	return &SessionResponse{
		ID:          session.ID,
		CurrentStep: session.CurrentStep,
		IsComplete:  session.IsComplete,
		Profile:     collected,
		UserID:      session.UserID,
		PlanID:      session.PlanID,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}
