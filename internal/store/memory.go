package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MemoryStore keeps encoded plans in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	plans  map[string][]byte
	now    func() time.Time
	logger *zap.Logger
}

// NewMemoryStore creates an empty in-memory plan store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		plans:  make(map[string][]byte),
		now:    time.Now,
		logger: logger,
	}
}

// Save stores the plan and returns its ID.
func (m *MemoryStore) Save(ctx context.Context, plan Plan) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	plan, data, err := prepare(plan, m.now)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.plans[plan.ID] = data
	m.mu.Unlock()

	m.logger.Debug("saved plan",
		zap.String("op", "store.MemoryStore.Save"),
		zap.String("id", plan.ID),
		zap.Int("payments", len(plan.Schedule)),
	)
	return plan.ID, nil
}

// Load returns the plan stored under id.
func (m *MemoryStore) Load(ctx context.Context, id string) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	m.mu.RLock()
	data, ok := m.plans[id]
	m.mu.RUnlock()
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return decode(id, data)
}

// Delete removes the plan stored under id.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(m.plans, id)
	return nil
}
