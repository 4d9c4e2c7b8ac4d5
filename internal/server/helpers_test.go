package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:5173"

// memStore is an in-memory Store.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*db.User
	profiles map[uuid.UUID]*types.Profile
	progress map[uuid.UUID]*types.ProgressItem
	chats    map[uuid.UUID][]types.ChatMessage
	chatErr  error
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]*db.User{},
		profiles: map[uuid.UUID]*types.Profile{},
		progress: map[uuid.UUID]*types.ProgressItem{},
		chats:    map[uuid.UUID][]types.ChatMessage{},
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp. Callers hold mu.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateUser(ctx context.Context, email, name, hash string) (uuid.UUID, error) {
	if exists, _ := m.CheckEmailExists(ctx, email); exists {
		return uuid.Nil, db.ErrEmailTaken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	u := &db.User{ID: uuid.New(), Email: email, Name: name, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetProfile(_ context.Context, userID uuid.UUID) (*types.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) UpsertProfile(_ context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*types.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	p, ok := m.profiles[userID]
	if !ok {
		p = &types.Profile{ID: uuid.New(), UserID: userID, CreatedAt: now}
		m.profiles[userID] = p
	}
	p.AcademicInfo = req.AcademicInfo
	p.Skills = req.Skills
	p.Interests = req.Interests
	p.Languages = req.Languages
	p.UpdatedAt = now
	cp := *p
	return &cp, nil
}

func (m *memStore) ListProgress(_ context.Context, userID uuid.UUID) ([]types.ProgressItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []types.ProgressItem{}
	for _, it := range m.progress {
		if it.UserID == userID {
			items = append(items, *it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (m *memStore) CreateProgress(_ context.Context, userID uuid.UUID, req *types.CreateProgressRequest) (*types.ProgressItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.tick()
	it := &types.ProgressItem{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      types.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.progress[it.ID] = it
	cp := *it
	return &cp, nil
}

func (m *memStore) UpdateProgress(_ context.Context, userID, id uuid.UUID, req *types.UpdateProgressRequest) (*types.ProgressItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.progress[id]
	if !ok || it.UserID != userID {
		return nil, nil
	}
	now := m.tick()
	if req.Title != nil {
		it.Title = *req.Title
	}
	if req.Description != nil {
		it.Description = req.Description
	}
	if req.Status != nil {
		it.Status = *req.Status
		if it.Status == types.StatusCompleted {
			if it.CompletedAt == nil {
				it.CompletedAt = &now
			}
		} else {
			it.CompletedAt = nil
		}
	}
	it.UpdatedAt = now
	cp := *it
	return &cp, nil
}

func (m *memStore) DeleteProgress(_ context.Context, userID, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.progress[id]
	if !ok || it.UserID != userID {
		return false, nil
	}
	delete(m.progress, id)
	return true, nil
}

func (m *memStore) RecentChatMessages(_ context.Context, userID uuid.UUID, limit int) ([]types.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chatErr != nil {
		return nil, m.chatErr
	}
	msgs := m.chats[userID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]types.ChatMessage{}, msgs...), nil
}

func (m *memStore) AppendChatMessages(_ context.Context, userID uuid.UUID, messages ...types.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.chatErr != nil {
		return m.chatErr
	}
	m.chats[userID] = append(m.chats[userID], messages...)
	return nil
}

var _ Store = (*memStore)(nil)

// fakeClient answers every prompt with reply, or fails with err.
type fakeClient struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.GenerateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) Provider() llm.Provider { return llm.ProviderGemini }
func (f *fakeClient) Close() error           { return nil }

func (f *fakeClient) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type testServer struct {
	*Server
	store *memStore
	jwt   *JWTService
	t     *testing.T
}

type serverOption func(*Config)

func withRateLimit(cfg *ratelimit.Config) serverOption {
	return func(c *Config) { c.RateLimit = cfg }
}

// newTestServer builds a server over an in-memory store. A nil client
// means the model is not configured.
func newTestServer(t *testing.T, client llm.Client, mode coach.Mode, opts ...serverOption) *testServer {
	t.Helper()
	store := newMemStore()
	jwtSvc := NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	})
	cfg := Config{
		Port:           0,
		AllowedOrigins: []string{testOrigin},
		RateLimit:      &ratelimit.Config{Enabled: false},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	svc := coach.NewService(client, coach.Options{Mode: mode})
	s, err := New(cfg, Deps{
		Store:     store,
		Coach:     svc,
		JWT:       jwtSvc,
		Passwords: &config.PasswordConfig{BcryptCost: 10},
	})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, store: store, jwt: jwtSvc, t: t}
}

// do sends a JSON request; a non-empty token is sent as a Bearer header.
func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return ts.serve(req)
}

func (ts *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

// signup registers a user and returns its ID and token.
func (ts *testServer) signup(email string) (uuid.UUID, string) {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "s3cret-pass", "name": "Asha",
	})
	require.Equal(ts.t, http.StatusCreated, w.Code, w.Body.String())
	var resp types.AuthResponse
	require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.User.ID, resp.Token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &body)
	return body.Message
}

var errStoreDown = errors.New("store down")
