package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/google/uuid"
)

type PlansMemoryStorage struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]storage.Plan
}

func NewPlansMemoryStorage() *PlansMemoryStorage {
	return &PlansMemoryStorage{
		plans: make(map[uuid.UUID]storage.Plan),
	}
}

func (s *PlansMemoryStorage) CreatePlan(ctx context.Context, plan *storage.Plan) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	plan.CreatedAt = time.Now().UTC()

	s.plans[plan.ID] = clonePlan(*plan)
	return nil
}

func (s *PlansMemoryStorage) GetPlan(ctx context.Context, id uuid.UUID) (*storage.Plan, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	plan = clonePlan(plan)
	return &plan, nil
}

func (s *PlansMemoryStorage) GetLatestPlanForUser(ctx context.Context, userID uuid.UUID) (*storage.Plan, error) {
	_ = ctx

	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *storage.Plan
	for id := range s.plans {
		plan := s.plans[id]
		if plan.UserID != userID {
			continue
		}
		if latest == nil || plan.CreatedAt.After(latest.CreatedAt) {
			p := clonePlan(plan)
			latest = &p
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	return latest, nil
}

func clonePlan(plan storage.Plan) storage.Plan {
	if plan.DietPlan != nil {
		plan.DietPlan = append([]byte(nil), plan.DietPlan...)
	}
	if plan.WorkoutPlan != nil {
		plan.WorkoutPlan = append([]byte(nil), plan.WorkoutPlan...)
	}
	return plan
}
