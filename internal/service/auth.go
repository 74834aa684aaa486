package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/PatoApp/internal/models"
)

// ErrNotInitialized signals that an AuthService was used without being
// built by NewAuthService.
var ErrNotInitialized = errors.New("auth store used outside provider")

// dateLayout is the format of User.RegisteredAt.
const dateLayout = "2006-01-02"

// AuthService owns the account roster and the single active session.
// State lives in memory and is written through to the store on every change;
// store failures are logged and never surface to callers.
//
// The session is bound to an opaque token handed out by LoginWithToken and
// kept in memory only. A session restored from the store has no token until
// its owner logs in again.
type AuthService struct {
	mu      sync.Mutex
	store   KVStore
	log     *zap.Logger
	ready   bool
	session *models.User
	token   string
	users   []models.User
	// rosterStale is set while the stored roster could not be read;
	// the in-memory roster is then never written over it.
	rosterStale bool

	now      func() time.Time
	newID    func() string
	newToken func() string
}

// NewAuthService loads the persisted session and roster from store.
// A missing or malformed roster is replaced by the default roster,
// which is persisted right away. A malformed session is treated as absent.
// A nil store keeps everything in memory.
func NewAuthService(ctx context.Context, store KVStore, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &AuthService{
		store:    store,
		log:      log,
		ready:    true,
		now:      time.Now,
		newID:    uuid.NewString,
		newToken: uuid.NewString,
	}

	var session models.User
	if ok, _ := s.read(ctx, SessionKey, &session); ok && session.ID != "" {
		s.session = &session
	}

	s.loadRoster(ctx)
	return s
}

// loadRoster reads the roster, seeding and persisting the defaults when it is
// absent or malformed. A failed read serves the defaults, marks the roster
// stale and writes nothing.
func (s *AuthService) loadRoster(ctx context.Context) {
	var users []models.User
	ok, err := s.read(ctx, UsersKey, &users)
	switch {
	case err != nil:
		s.users = models.DefaultUsers()
		s.rosterStale = true
	case ok && users != nil:
		s.users = users
		s.rosterStale = false
	default:
		s.users = models.DefaultUsers()
		s.rosterStale = false
		s.write(ctx, UsersKey, s.users)
	}
}

// refreshRoster retries a roster that could not be read before.
func (s *AuthService) refreshRoster(ctx context.Context) {
	if s.rosterStale {
		s.loadRoster(ctx)
	}
}

func (s *AuthService) writeRoster(ctx context.Context) {
	if s.rosterStale {
		s.log.Warn("roster unreadable, change not persisted", zap.String("key", UsersKey))
		return
	}
	s.write(ctx, UsersKey, s.users)
}

func (s *AuthService) mustBeReady() {
	if s == nil || !s.ready {
		panic(ErrNotInitialized)
	}
}

// CurrentUser returns the account of the active session.
func (s *AuthService) CurrentUser() (models.User, bool) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.User{}, false
	}
	return *s.session, true
}

// Users returns a copy of the roster.
func (s *AuthService) Users() []models.User {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...)
}

// Login starts a session for the account whose email and password match exactly.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, bool) {
	user, _, ok := s.LoginWithToken(ctx, email, password)
	return user, ok
}

// LoginWithToken is Login returning the token that identifies the new
// session. Any previous session and its token are replaced.
func (s *AuthService) LoginWithToken(ctx context.Context, email, password string) (models.User, string, bool) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshRoster(ctx)
	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			user := u
			s.session = &user
			s.token = s.newToken()
			s.write(ctx, SessionKey, user)
			s.log.Info("user logged in", zap.String("user_id", user.ID))
			return user, s.token, true
		}
	}

	s.log.Info("login rejected", zap.String("email", email))
	return models.User{}, "", false
}

// Authenticate returns the session's account if token identifies it.
func (s *AuthService) Authenticate(token string) (models.User, bool) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || s.token == "" || token == "" {
		return models.User{}, false
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) != 1 {
		return models.User{}, false
	}
	return *s.session, true
}

// Register appends a new account built from in. It reports false, leaving
// the roster untouched, if the email or the username is already taken.
// The new account is not logged in.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) bool {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshRoster(ctx)
	for _, u := range s.users {
		if u.Email == in.Email || u.Username == in.Username {
			return false
		}
	}

	user := models.User{
		ID:           s.uniqueID(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Username:     in.Username,
		Password:     in.Password,
		Role:         models.RoleUser,
		Plan:         models.PlanFree,
		RegisteredAt: s.now().Format(dateLayout),
	}
	s.users = append(s.users, user)
	s.writeRoster(ctx)

	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return true
}

// Logout ends the active session and removes it from the store.
func (s *AuthService) Logout(ctx context.Context) {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.token = ""
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, SessionKey); err != nil {
		s.log.Warn("failed to remove session", zap.String("key", SessionKey), zap.Error(err))
	}
}

// UpdatePlan changes the plan of the active session and of the matching
// roster entry, persisting both. Without a session, or for an unknown plan,
// it writes nothing and reports false.
func (s *AuthService) UpdatePlan(ctx context.Context, plan models.Plan) bool {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil || !plan.Valid() {
		return false
	}
	s.refreshRoster(ctx)

	updated := *s.session
	updated.Plan = plan
	s.session = &updated
	s.write(ctx, SessionKey, updated)

	users := make([]models.User, len(s.users))
	for i, u := range s.users {
		if u.ID == updated.ID {
			u = updated
		}
		users[i] = u
	}
	s.users = users
	s.writeRoster(ctx)

	s.log.Info("plan updated", zap.String("user_id", updated.ID), zap.String("plan", string(plan)))
	return true
}

func (s *AuthService) uniqueID() string {
	for {
		id := s.newID()
		taken := id == ""
		for _, u := range s.users {
			if u.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

// read decodes the value under key into v. It reports false when the key is
// absent or malformed; the error is set only when the store itself failed.
func (s *AuthService) read(ctx context.Context, key string, v any) (bool, error) {
	if s.store == nil {
		return false, nil
	}
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn("failed to read store", zap.String("key", key), zap.Error(err))
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn("malformed stored value", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *AuthService) write(ctx context.Context, key string, v any) {
	if s.store == nil {
		return
	}
	if err := writeJSON(ctx, s.store, key, v); err != nil {
		s.log.Warn("failed to persist", zap.String("key", key), zap.Error(err))
	}
}
