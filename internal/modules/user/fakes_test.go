package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/delordemm1/learnhub-api/internal/config"
	"github.com/delordemm1/learnhub-api/internal/notification"
	"github.com/delordemm1/learnhub-api/internal/notification/templates"
	"github.com/delordemm1/learnhub-api/internal/signedurl"
)

// fakeRepo is an in-memory Repository. It is safe for the concurrent access
// the service's fire-and-forget goroutines can cause.
type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*User // by ID
}

func newFakeRepo(users ...*User) *fakeRepo {
	r := &fakeRepo{users: make(map[string]*User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeRepo) get(id string) *User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp
	}
	return nil
}

func (r *fakeRepo) Create(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrEmailExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) MarkEmailVerified(ctx context.Context, userID string, at time.Time, autoApprove bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.EmailVerifiedAt != nil {
		return false, nil
	}
	u.EmailVerifiedAt = &at
	if autoApprove {
		u.ApprovedAt = &at
	}
	return true, nil
}

func (r *fakeRepo) Approve(ctx context.Context, userID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || u.ApprovedAt != nil {
		return false, nil
	}
	u.ApprovedAt = &at
	return true, nil
}

func (r *fakeRepo) UpdatePassword(ctx context.Context, userID string, newPasswordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = newPasswordHash
	u.PasswordResetToken = nil
	u.PasswordResetTokenExpiry = nil
	return nil
}

func (r *fakeRepo) FindByPasswordResetToken(ctx context.Context, tokenHash string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == tokenHash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) UpdatePasswordResetInfo(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.PasswordResetToken = &tokenHash
	u.PasswordResetTokenExpiry = &expiry
	return nil
}

// fakeSessions issues deterministic tokens and remembers what it deleted.
type fakeSessions struct {
	mu      sync.Mutex
	next    int
	created map[string]string // token -> userID
	deleted []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{created: make(map[string]string)}
}

func (s *fakeSessions) CreateAuthSession(ctx context.Context, userID, userAgent, ip string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	token := fmt.Sprintf("auth:token-%d", s.next)
	s.created[token] = userID
	return token, nil
}

func (s *fakeSessions) GetAndExtend(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if userID, ok := s.created[sessionID]; ok {
		return userID, nil
	}
	return "", fmt.Errorf("unknown session")
}

func (s *fakeSessions) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.created, sessionID)
	s.deleted = append(s.deleted, sessionID)
	return nil
}

// fakeNotifier swallows notifications; sends happen on background goroutines
// so it only counts them under a lock.
type fakeNotifier struct {
	mu    sync.Mutex
	sends []notification.Notification
}

func (n *fakeNotifier) Send(ctx context.Context, msg notification.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sends = append(n.sends, msg)
	return nil
}

func (n *fakeNotifier) Render(ctx context.Context, id string, data any) (templates.Rendered, error) {
	return templates.Rendered{Subject: id}, nil
}

// testClock is a fixed instant all test components share.
var testClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	repo     *fakeRepo
	sessions *fakeSessions
	notifier *fakeNotifier
	codec    *signedurl.Codec
	svc      Service
}

func newTestEnv(t *testing.T, users ...*User) *testEnv {
	t.Helper()
	repo := newFakeRepo(users...)
	sessions := newFakeSessions()
	notifier := &fakeNotifier{}
	codec := signedurl.New("test-secret", "http://api.test/email/verify", time.Hour).
		WithClock(func() time.Time { return testClock })
	cfg := &config.Config{
		App: config.AppConfig{
			Name:        "LearnHub",
			URL:         "http://api.test",
			FrontendURL: "http://front.test",
		},
	}
	svc := NewService(&Config{
		Repo:     repo,
		Sessions: sessions,
		Notifier: notifier,
		Codec:    codec,
		Logger:   slog.New(slog.DiscardHandler),
		Config:   cfg,
	})
	return &testEnv{repo: repo, sessions: sessions, notifier: notifier, codec: codec, svc: svc}
}

// mustHash produces a bcrypt hash for test fixtures.
func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := hashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return h
}

func ptrTime(v time.Time) *time.Time { return &v }
