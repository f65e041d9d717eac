package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fdg312/fitcoach/internal/ai"
	"github.com/fdg312/fitcoach/internal/flow"
	"github.com/fdg312/fitcoach/internal/plangen"
	"github.com/fdg312/fitcoach/internal/profile"
	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/fdg312/fitcoach/internal/userctx"
	"github.com/google/uuid"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrSessionNotFound = errors.New("session not found")
)

const retryPrefix = "Sorry, I didn't catch that. "

// Service ведёт диалог интервью: одно сообщение пользователя — одно поле
// профиля. После закрытия всех шагов генерирует план и отвечает на
// follow-up вопросы.
type Service struct {
	storage      storage.Storage
	provider     ai.Provider
	generator    *plangen.Generator
	historyLimit int
}

func NewService(store storage.Storage, provider ai.Provider, generator *plangen.Generator, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &Service{
		storage:      store,
		provider:     provider,
		generator:    generator,
		historyLimit: historyLimit,
	}
}

// Start opens a new session and asks the first question.
func (s *Service) Start(ctx context.Context) (*StartResponse, error) {
	session := &storage.Session{
		OwnerUserID: userIDFromContext(ctx),
		CurrentStep: profile.Steps[0],
		Collected:   []byte(`{}`),
	}
	if err := s.storage.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	question := s.askQuestion(ctx, profile.FieldName, "")
	if err := s.insertMessage(ctx, session.ID, "assistant", question); err != nil {
		return nil, err
	}

	return &StartResponse{
		SessionID: session.ID,
		Step:      session.CurrentStep,
		Message:   question,
	}, nil
}

// Message processes one user message. Until the interview is complete it runs
// the field flow; afterwards it answers follow-up questions about the plan.
func (s *Service) Message(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if req.SessionID == uuid.Nil || content == "" {
		return nil, ErrInvalidRequest
	}

	session, err := s.ownedSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.insertMessage(ctx, session.ID, "user", content); err != nil {
		return nil, err
	}

	if session.IsComplete {
		return s.answerFollowUp(ctx, session, content)
	}

	p := profile.New()
	if len(session.Collected) > 0 {
		if err := json.Unmarshal(session.Collected, &p); err != nil {
			return nil, fmt.Errorf("failed to decode session profile: %w", err)
		}
	}

	res := flow.Advance(p, session.CurrentStep, content)

	collected, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	session.Collected = collected
	session.CurrentStep = res.Step

	resp := &MessageResponse{
		SessionID: session.ID,
		Field:     res.Field,
		Value:     res.Value,
		Step:      res.Step,
		Complete:  res.Complete,
	}

	switch {
	case res.ErrorMessage != "":
		resp.Message = res.ErrorMessage
	case res.Complete:
		planResp, explanation, err := s.finishInterview(ctx, session, p)
		if err != nil {
			return nil, err
		}
		resp.Plan = planResp
		resp.Message = explanation
	case !res.Saved:
		resp.Message = retryPrefix + s.askQuestion(ctx, res.NextField, p.Str(profile.FieldName))
	default:
		resp.Message = s.askQuestion(ctx, res.NextField, p.Str(profile.FieldName))
	}

	if err := s.storage.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	if err := s.insertMessage(ctx, session.ID, "assistant", resp.Message); err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*SessionResponse, error) {
	session, err := s.ownedSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return sessionToDTO(session), nil
}

func (s *Service) ListSessionMessages(ctx context.Context, id uuid.UUID, limit int) (*ListMessagesResponse, error) {
	if _, err := s.ownedSession(ctx, id); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	rows, err := s.storage.ListMessages(ctx, id, limit)
	if err != nil {
		return nil, err
	}

	messages := make([]MessageDTO, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, messageToDTO(row))
	}
	return &ListMessagesResponse{Messages: messages}, nil
}

// finishInterview строит план по собранному профилю, сохраняет пользователя
// и план, помечает сессию завершённой.
func (s *Service) finishInterview(ctx context.Context, session *storage.Session, p profile.Profile) (*PlanResponse, string, error) {
	targets, mealPlan, workoutPlan, err := s.generator.Generate(p)
	if err != nil {
		return nil, "", err
	}

	user := userFromProfile(p)
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	dietJSON, err := json.Marshal(mealPlan)
	if err != nil {
		return nil, "", err
	}
	workoutJSON, err := json.Marshal(workoutPlan)
	if err != nil {
		return nil, "", err
	}

	explanation, err := s.provider.ExplainPlan(ctx, ai.ExplainRequest{
		UserName:          user.Name,
		Goal:              user.Goal,
		DietType:          user.DietType,
		WorkoutExperience: user.WorkoutExperience,
		DietPlan:          dietJSON,
		WorkoutPlan:       workoutJSON,
	})
	if err != nil || strings.TrimSpace(explanation) == "" {
		if err != nil {
			log.Printf("WARNING: plan explanation failed, using fallback: %v", err)
		}
		explanation = ai.FallbackExplanation(user.Goal, user.DietType, user.WorkoutExperience)
	}

	plan := &storage.Plan{
		UserID:      user.ID,
		DietPlan:    dietJSON,
		WorkoutPlan: workoutJSON,
		Explanation: explanation,
	}
	if err := s.storage.CreatePlan(ctx, plan); err != nil {
		return nil, "", err
	}

	session.UserID = &user.ID
	session.PlanID = &plan.ID
	session.IsComplete = true

	return &PlanResponse{
		UserID:       user.ID,
		PlanID:       plan.ID,
		DailyTargets: targets,
		DietPlan:     dietJSON,
		WorkoutPlan:  workoutJSON,
		Explanation:  explanation,
	}, explanation, nil
}

// answerFollowUp отвечает на вопрос по готовому плану, опираясь на историю
// диалога и сохранённое объяснение.
func (s *Service) answerFollowUp(ctx context.Context, session *storage.Session, question string) (*MessageResponse, error) {
	explanation := ""
	if session.PlanID != nil {
		if plan, err := s.storage.GetPlan(ctx, *session.PlanID); err == nil {
			explanation = plan.Explanation
		}
	}

	rows, err := s.storage.ListMessages(ctx, session.ID, s.historyLimit)
	if err != nil {
		return nil, err
	}
	history := make([]ai.ChatMessage, 0, len(rows))
	for _, row := range rows {
		history = append(history, ai.ChatMessage{
			Role:      row.Role,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
		})
	}

	answer, err := s.provider.FollowUp(ctx, ai.FollowUpRequest{
		Question:    question,
		Profile:     session.Collected,
		Explanation: explanation,
		History:     history,
	})
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			log.Printf("WARNING: follow-up answer failed, using fallback: %v", err)
		}
		answer = "I couldn't come up with an answer just now. Please try rephrasing your question."
	}

	if err := s.insertMessage(ctx, session.ID, "assistant", answer); err != nil {
		return nil, err
	}

	return &MessageResponse{
		SessionID: session.ID,
		Step:      session.CurrentStep,
		Complete:  true,
		Message:   answer,
	}, nil
}

// askQuestion формулирует вопрос через провайдера, при любой ошибке
// возвращает статический вопрос.
func (s *Service) askQuestion(ctx context.Context, field, userName string) string {
	question, err := s.provider.NextQuestion(ctx, ai.QuestionRequest{
		Field:    field,
		UserName: userName,
	})
	if err != nil || strings.TrimSpace(question) == "" {
		if err != nil {
			log.Printf("WARNING: question for field %q failed, using fallback: %v", field, err)
		}
		return ai.FieldPrompt(field, userName)
	}
	return question
}

func (s *Service) insertMessage(ctx context.Context, sessionID uuid.UUID, role, content string) error {
	return s.storage.InsertMessage(ctx, &storage.ConversationMessage{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	})
}

// ownedSession возвращает сессию, если она принадлежит текущему пользователю.
// Сессии без владельца (auth выключен) доступны всем.
func (s *Service) ownedSession(ctx context.Context, id uuid.UUID) (*storage.Session, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.OwnerUserID != "" && session.OwnerUserID != userIDFromContext(ctx) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func userFromProfile(p profile.Profile) *storage.User {
	user := &storage.User{
		Name:               p.Str(profile.FieldName),
		Age:                p.Int(profile.FieldAge),
		Gender:             p.Str(profile.FieldGender),
		HeightCm:           p.Float(profile.FieldHeight),
		WeightKg:           p.Float(profile.FieldWeight),
		Goal:               p.Str(profile.FieldGoal),
		MedicalConditions:  p.Str(profile.FieldMedicalConditions),
		FoodAllergies:      p.Str(profile.FieldFoodAllergies),
		DietType:           p.Str(profile.FieldDietType),
		DislikedFoods:      p.Str(profile.FieldDislikedFoods),
		MealsPerDay:        p.Int(profile.FieldMealsPerDay),
		CookingHabits:      p.Str(profile.FieldCookingHabits),
		WakeTime:           p.Str(profile.FieldWakeTime),
		SleepTime:          p.Str(profile.FieldSleepTime),
		WorkHours:          p.Str(profile.FieldWorkHours),
		ActivityLevel:      p.Str(profile.FieldActivityLevel),
		WorkoutExperience:  p.Str(profile.FieldWorkoutExperience),
		WorkoutDaysPerWeek: p.Int(profile.FieldWorkoutDaysPerWeek),
		WorkoutDuration:    p.Int(profile.FieldWorkoutDuration),
	}
	if p.Str(profile.FieldTargetWeight) != "" {
		target := p.Float(profile.FieldTargetWeight)
		user.TargetWeightKg = &target
	}
	return user
}

func userIDFromContext(ctx context.Context) string {
	userID, ok := userctx.GetUserID(ctx)
	if !ok {
		return ""
	}
	return strings.TrimSpace(userID)
}
