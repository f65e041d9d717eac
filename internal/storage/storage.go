// Package storage определяет модели и интерфейсы хранилища.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound возвращается, когда запись не найдена
var ErrNotFound = errors.New("not found")

// Session — одно интервью чат-бота. Collected хранит накопленный профиль
// в JSON; UserID и PlanID заполняются после завершения интервью.
type Session struct {
	ID          uuid.UUID
	OwnerUserID string // auth subject that opened the session, "" when auth is off
	CurrentStep string
	Collected   []byte
	IsComplete  bool
	UserID      *uuid.UUID
	PlanID      *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// User — завершённый профиль, по которому построен план.
type User struct {
	ID                 uuid.UUID
	Name               string
	Age                int
	Gender             string
	HeightCm           float64
	WeightKg           float64
	Goal               string
	TargetWeightKg     *float64
	MedicalConditions  string
	FoodAllergies      string
	DietType           string
	DislikedFoods      string
	MealsPerDay        int
	CookingHabits      string
	WakeTime           string
	SleepTime          string
	WorkHours          string
	ActivityLevel      string
	WorkoutExperience  string
	WorkoutDaysPerWeek int
	WorkoutDuration    int
	CreatedAt          time.Time
}

// Plan — сгенерированный план. DietPlan и WorkoutPlan хранятся в JSON.
type Plan struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	DietPlan    []byte
	WorkoutPlan []byte
	Explanation string
	CreatedAt   time.Time
}

// ConversationMessage — одно сообщение диалога (role = user|assistant).
type ConversationMessage struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

type SessionsStorage interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id uuid.UUID) (*Session, error)
	UpdateSession(ctx context.Context, session *Session) error
}

type UsersStorage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
}

type PlansStorage interface {
	CreatePlan(ctx context.Context, plan *Plan) error
	GetPlan(ctx context.Context, id uuid.UUID) (*Plan, error)
	GetLatestPlanForUser(ctx context.Context, userID uuid.UUID) (*Plan, error)
}

type MessagesStorage interface {
	InsertMessage(ctx context.Context, message *ConversationMessage) error
	ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]ConversationMessage, error)
}

// Storage объединяет все хранилища приложения.
type Storage interface {
	SessionsStorage
	UsersStorage
	PlansStorage
	MessagesStorage
	Close()
}
