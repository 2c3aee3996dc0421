package accounts_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-accounts"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements accounts.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByID(ctx context.Context, id int64) (*accounts.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) FindByUsername(ctx context.Context, username string) (*accounts.User, error) {
	args := m.Called(ctx, username)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) FindAll(ctx context.Context) ([]*accounts.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserStore) Save(ctx context.Context, user *accounts.User) (*accounts.User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockLogger implements accounts.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// memUserStore is an in-memory UserStore with unique username/email
// enforcement, for lifecycle tests that care about state rather than calls.
type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*accounts.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[int64]*accounts.User{}}
}

func (s *memUserStore) FindByID(ctx context.Context, id int64) (*accounts.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, accounts.ErrUserNotFound
}

func (s *memUserStore) FindByUsername(ctx context.Context, username string) (*accounts.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, accounts.ErrUserNotFound
}

func (s *memUserStore) FindAll(ctx context.Context) ([]*accounts.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*accounts.User, 0, len(s.users))
	for _, user := range s.users {
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memUserStore) Save(ctx context.Context, user *accounts.User) (*accounts.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return nil, accounts.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return nil, accounts.ErrDuplicateEmail
		}
	}

	if user.ID == 0 {
		s.nextID++
		user.ID = s.nextID
	} else if _, ok := s.users[user.ID]; !ok {
		return nil, accounts.ErrUserNotFound
	}

	clone := *user
	s.users[user.ID] = &clone
	return user, nil
}

// memFileStore keeps stored blobs in a map so tests can assert which
// references are still resolvable.
type memFileStore struct {
	mu    sync.Mutex
	seq   int
	files map[string][]byte
}

func newMemFileStore() *memFileStore {
	return &memFileStore{files: map[string][]byte{}}
}

func (s *memFileStore) Store(data []byte, suggestedName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	ref := fmt.Sprintf("%d_%s", s.seq, suggestedName)
	s.files[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (s *memFileStore) Delete(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, ref)
	return nil
}

func (s *memFileStore) Exists(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.files[ref]
	return ok
}
