package ai

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider — детерминированный провайдер для тестов и демо-режима.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) NextQuestion(ctx context.Context, req QuestionRequest) (string, error) {
	_ = ctx
	return FieldPrompt(req.Field, req.UserName), nil
}

func (p *MockProvider) ExplainPlan(ctx context.Context, req ExplainRequest) (string, error) {
	_ = ctx
	return FallbackExplanation(req.Goal, req.DietType, req.WorkoutExperience), nil
}

func (p *MockProvider) FollowUp(ctx context.Context, req FollowUpRequest) (string, error) {
	_ = ctx

	question := strings.ToLower(req.Question)
	switch {
	case strings.Contains(question, "calorie"), strings.Contains(question, "macro"):
		return "Your daily targets are in your plan. Stick to the listed meal portions and they will add up to your calorie goal.", nil
	case strings.Contains(question, "workout"), strings.Contains(question, "exercise"):
		return "Follow the weekly workout schedule in your plan and rest on the marked rest days.", nil
	default:
		return fmt.Sprintf("Your plan already covers that. %s", req.Explanation), nil
	}
}
