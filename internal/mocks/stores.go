package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lumina-api/internal/domain"
	"github.com/phrazzld/lumina-api/internal/store"
)

// MockContactStore is an in-memory store.ContactStore.
type MockContactStore struct {
	mu       sync.Mutex
	contacts map[uuid.UUID]*domain.Contact

	// Err, when set, is returned by every method.
	Err error
}

var _ store.ContactStore = (*MockContactStore)(nil)

// NewMockContactStore returns a store holding contacts.
func NewMockContactStore(contacts ...*domain.Contact) *MockContactStore {
	m := &MockContactStore{contacts: make(map[uuid.UUID]*domain.Contact)}
	for _, c := range contacts {
		m.contacts[c.ID] = c
	}
	return m
}

// List returns all contacts ordered by name.
func (m *MockContactStore) List(ctx context.Context) ([]*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*domain.Contact, 0, len(m.contacts))
	for _, c := range m.contacts {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetByID returns a copy of the contact or store.ErrContactNotFound.
func (m *MockContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.contacts[id]
	if !ok {
		return nil, store.ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

// MockMessageStore is an in-memory store.MessageStore. Messages are kept in
// insertion order.
type MockMessageStore struct {
	mu       sync.Mutex
	messages []*domain.Message

	// CreateErr and ListErr, when set, are returned by the matching method.
	CreateErr error
	ListErr   error

	// CreateFn, when set, is consulted before each Create; a non-nil result
	// fails that call.
	CreateFn func(msg *domain.Message) error
}

var _ store.MessageStore = (*MockMessageStore)(nil)

// NewMockMessageStore returns an empty message store.
func NewMockMessageStore() *MockMessageStore {
	return &MockMessageStore{}
}

// Create validates and appends msg.
func (m *MockMessageStore) Create(ctx context.Context, msg *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if m.CreateFn != nil {
		if err := m.CreateFn(msg); err != nil {
			return err
		}
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	cp := *msg
	m.messages = append(m.messages, &cp)
	return nil
}

// ListRecent returns the newest limit messages of the conversation, oldest
// first.
func (m *MockMessageStore) ListRecent(
	ctx context.Context,
	userID, contactID uuid.UUID,
	limit int,
) ([]*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []*domain.Message
	for _, msg := range m.messages {
		if msg.UserID == userID && msg.ContactID == contactID {
			cp := *msg
			out = append(out, &cp)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// WithTx returns the store itself.
func (m *MockMessageStore) WithTx(tx *sql.Tx) store.MessageStore {
	return m
}

// All returns every stored message in insertion order.
func (m *MockMessageStore) All() []*domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Message(nil), m.messages...)
}

// MockStudyPlanStore is an in-memory store.StudyPlanStore.
type MockStudyPlanStore struct {
	mu    sync.Mutex
	plans map[uuid.UUID]*domain.SavedStudyPlan

	// Err, when set, is returned by every method.
	Err error
}

var _ store.StudyPlanStore = (*MockStudyPlanStore)(nil)

// NewMockStudyPlanStore returns a store holding plans.
func NewMockStudyPlanStore(plans ...*domain.SavedStudyPlan) *MockStudyPlanStore {
	m := &MockStudyPlanStore{plans: make(map[uuid.UUID]*domain.SavedStudyPlan)}
	for _, p := range plans {
		m.plans[p.ID] = clonePlan(p)
	}
	return m
}

func clonePlan(p *domain.SavedStudyPlan) *domain.SavedStudyPlan {
	cp := *p
	cp.Plan.Tasks = append([]domain.StudyTask(nil), p.Plan.Tasks...)
	return &cp
}

// Create validates and stores plan. Returns store.ErrDuplicate when the ID is taken.
func (m *MockStudyPlanStore) Create(ctx context.Context, plan *domain.SavedStudyPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if err := plan.Validate(); err != nil {
		return err
	}
	if _, ok := m.plans[plan.ID]; ok {
		return store.ErrDuplicate
	}
	m.plans[plan.ID] = clonePlan(plan)
	return nil
}

// GetByID returns the plan if userID owns it.
func (m *MockStudyPlanStore) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SavedStudyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.plans[id]
	if !ok || p.UserID != userID {
		return nil, store.ErrStudyPlanNotFound
	}
	return clonePlan(p), nil
}

// GetByIDForUpdate behaves like GetByID.
func (m *MockStudyPlanStore) GetByIDForUpdate(
	ctx context.Context,
	userID, id uuid.UUID,
) (*domain.SavedStudyPlan, error) {
	return m.GetByID(ctx, userID, id)
}

// ListByUser returns the learner's plans, newest first.
func (m *MockStudyPlanStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SavedStudyPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.SavedStudyPlan
	for _, p := range m.plans {
		if p.UserID == userID {
			out = append(out, clonePlan(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update replaces a plan owned by plan.UserID.
func (m *MockStudyPlanStore) Update(ctx context.Context, plan *domain.SavedStudyPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	existing, ok := m.plans[plan.ID]
	if !ok || existing.UserID != plan.UserID {
		return store.ErrStudyPlanNotFound
	}
	if err := plan.Validate(); err != nil {
		return err
	}
	m.plans[plan.ID] = clonePlan(plan)
	return nil
}

// Delete removes a plan owned by userID.
func (m *MockStudyPlanStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	p, ok := m.plans[id]
	if !ok || p.UserID != userID {
		return store.ErrStudyPlanNotFound
	}
	delete(m.plans, id)
	return nil
}

// WithTx returns the store itself.
func (m *MockStudyPlanStore) WithTx(tx *sql.Tx) store.StudyPlanStore {
	return m
}
