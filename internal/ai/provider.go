// Package ai — слой формулировок. Провайдер только перефразирует вопросы и
// объясняет готовый план; корректность интервью и плана от него не зависит.
package ai

import (
	"context"
	"time"
)

type Provider interface {
	// NextQuestion phrases the question for the next profile field.
	NextQuestion(ctx context.Context, req QuestionRequest) (string, error)
	// ExplainPlan writes a short prose explanation of a generated plan.
	ExplainPlan(ctx context.Context, req ExplainRequest) (string, error)
	// FollowUp answers a free question once the interview is complete.
	FollowUp(ctx context.Context, req FollowUpRequest) (string, error)
}

type ChatMessage struct {
	Role      string
	Content   string
	CreatedAt time.Time
}

type QuestionRequest struct {
	Field    string
	UserName string
}

type ExplainRequest struct {
	UserName          string
	Goal              string
	DietType          string
	WorkoutExperience string
	DietPlan          []byte
	WorkoutPlan       []byte
}

type FollowUpRequest struct {
	Question    string
	Profile     []byte
	Explanation string
	History     []ChatMessage
}
