package usecase

import (
	"context"
	"errors"
	"sync"

	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of UserRepository.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(user *entity.User, first *entity.Token) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(id string) (*entity.User, error)
}

func (m *mockUserRepository) Create(_ context.Context, user *entity.User, first *entity.Token) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(user, first)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(id)
	}
	return nil, domain.ErrUserNotFound
}

// memoryTokenRepository keeps token sets in memory.
type memoryTokenRepository struct {
	mu     sync.Mutex
	sets   map[string][]string
	addErr error
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{sets: map[string][]string{}}
}

func (r *memoryTokenRepository) Add(_ context.Context, token *entity.Token) error {
	if r.addErr != nil {
		return r.addErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.sets[token.UserID] {
		if v == token.Value {
			return errors.New("duplicate token")
		}
	}
	r.sets[token.UserID] = append(r.sets[token.UserID], token.Value)
	return nil
}

func (r *memoryTokenRepository) Contains(_ context.Context, userID, value string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.sets[userID] {
		if v == value {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryTokenRepository) Remove(_ context.Context, userID, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.sets[userID][:0]
	for _, v := range r.sets[userID] {
		if v != value {
			kept = append(kept, v)
		}
	}
	r.sets[userID] = kept
	return nil
}

func (r *memoryTokenRepository) RemoveAll(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, userID)
	return nil
}

func (r *memoryTokenRepository) tokensOf(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sets[userID]...)
}

// fakeSigner produces readable tokens: "<userID>.<n>".
type fakeSigner struct {
	mu      sync.Mutex
	n       int
	signErr error
}

func (s *fakeSigner) Sign(userID string) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return userID + "." + string(rune('a'+s.n)), nil
}

func (s *fakeSigner) Parse(token string) (string, error) {
	for i := len(token) - 1; i >= 0; i-- {
		if token[i] == '.' {
			return token[:i], nil
		}
	}
	return "", errors.New("malformed")
}

// plainHasher prefixes instead of hashing, which keeps tests fast.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Compare(hash, plain string) bool { return hash != "" && hash == "hashed:"+plain }

// mockWelcomeSender records welcome emails.
type mockWelcomeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *mockWelcomeSender) SendWelcome(_ context.Context, email, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return m.err
}

// runInline replaces the background dispatcher so side effects are observable synchronously.
func runInline(ctx context.Context, _ string, fn func(ctx context.Context) error) {
	_ = fn(ctx)
}
