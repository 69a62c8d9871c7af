package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fabiareis/trading-journal/blobstore"
	"github.com/fabiareis/trading-journal/internal/i18n"
	"github.com/fabiareis/trading-journal/internal/logger"
	"github.com/fabiareis/trading-journal/internal/telemetry"
	"github.com/fabiareis/trading-journal/journal"
	"github.com/fabiareis/trading-journal/pkg/id"
)

// Options configures a Manager. The zero value is usable.
type Options struct {
	Logger     *zap.Logger
	Metrics    *telemetry.Metrics
	Translator *i18n.Translator

	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Manager owns the user list and the current session.
type Manager struct {
	store   blobstore.Store
	log     *zap.Logger
	metrics *telemetry.Metrics
	tr      *i18n.Translator
	cost    int
	now     func() time.Time

	users    []User
	current  *User
	loggedIn bool
}

func New(s blobstore.Store, opts Options) *Manager {
	m := &Manager{
		store:   s,
		log:     logger.OrNop(opts.Logger).With(zap.String("component", "users")),
		metrics: opts.Metrics,
		tr:      opts.Translator,
		cost:    opts.BcryptCost,
		now:     opts.Now,
		users:   []User{},
	}
	if m.tr == nil {
		m.tr = i18n.MustNew(i18n.DefaultLocale)
	}
	if m.cost == 0 {
		m.cost = bcrypt.DefaultCost
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Load reads the user list and the session from the store. A corrupt user
// list leaves the manager empty and returns a *journal.CorruptSnapshotError.
func (m *Manager) Load(ctx context.Context) error {
	var errs []error

	users := []User{}
	data, err := m.store.Get(ctx, KeyUsers)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
	case err != nil:
		return fmt.Errorf("read %s: %w", KeyUsers, err)
	default:
		if err := json.Unmarshal(data, &users); err != nil {
			users = []User{}
			m.log.Warn("discarding corrupt user list", zap.Error(err))
			m.metrics.CorruptSnapshot(KeyUsers)
			errs = append(errs, &journal.CorruptSnapshotError{Key: KeyUsers, Err: err})
		}
	}
	if users == nil {
		users = []User{}
	}
	m.users = users

	m.current = nil
	data, err = m.store.Get(ctx, KeyCurrentUser)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
	case err != nil:
		return fmt.Errorf("read %s: %w", KeyCurrentUser, err)
	default:
		var u *User
		if err := json.Unmarshal(data, &u); err != nil {
			m.metrics.CorruptSnapshot(KeyCurrentUser)
			errs = append(errs, &journal.CorruptSnapshotError{Key: KeyCurrentUser, Err: err})
		} else if u != nil {
			s := u.session()
			m.current = &s
		}
	}

	data, err = m.store.Get(ctx, KeyIsLoggedIn)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		m.loggedIn = false
	case err != nil:
		return fmt.Errorf("read %s: %w", KeyIsLoggedIn, err)
	default:
		m.loggedIn = string(data) == "true"
	}

	m.log.Debug("loaded", zap.Int("users", len(m.users)), zap.Bool("logged_in", m.loggedIn))
	return errors.Join(errs...)
}

// Register creates a user. All fields are required and the username must
// not be taken (case-sensitive).
func (m *Manager) Register(ctx context.Context, fullName, username, password string) Result {
	const op = "register"
	if fullName == "" || username == "" || password == "" {
		return m.fail(op, i18n.MsgFieldsRequired, ErrValidation)
	}
	if _, ok := m.findByUsername(username); ok {
		return m.fail(op, i18n.MsgUsernameTaken, ErrDuplicateUsername)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return m.fail(op, i18n.MsgStorageFailure, fmt.Errorf("hash password: %w", err))
	}

	now := m.now().UTC()
	u := User{
		ID:        id.NewAt(now),
		FullName:  fullName,
		Username:  username,
		Password:  string(hash),
		CreatedAt: now,
	}
	next := append(append([]User(nil), m.users...), u)
	if err := m.saveUsers(ctx, next); err != nil {
		return m.fail(op, i18n.MsgStorageFailure, err)
	}
	m.users = next

	m.log.Info("user registered", zap.String("id", u.ID), zap.String("username", u.Username))
	return m.ok(op, i18n.MsgUserRegistered)
}

// Login opens a session for the first user matching both username and
// password. Usernames can repeat after an update, so every user with the
// name is tried.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	const op = "login"
	i := -1
	for j, u := range m.users {
		if u.Username == username && m.checkPassword(ctx, j, password) {
			i = j
			break
		}
	}
	if i < 0 {
		return m.fail(op, i18n.MsgInvalidLogin, ErrAuthentication)
	}

	s := m.users[i].session()
	if err := m.saveSession(ctx, &s); err != nil {
		return m.fail(op, i18n.MsgStorageFailure, err)
	}
	m.current = &s
	m.loggedIn = true

	m.log.Info("logged in", zap.String("id", s.ID))
	return m.ok(op, i18n.MsgLoginSuccess)
}

// Logout clears the session. It succeeds when nobody is logged in.
func (m *Manager) Logout(ctx context.Context) Result {
	const op = "logout"
	if err := m.clearSession(ctx); err != nil {
		return m.fail(op, i18n.MsgStorageFailure, err)
	}
	return m.ok(op, i18n.MsgLogoutSuccess)
}

// DeleteUser removes the user with the given id, logging out first if it is
// the current user.
func (m *Manager) DeleteUser(ctx context.Context, userID string) Result {
	const op = "delete"
	i, ok := m.findByID(userID)
	if !ok {
		return m.fail(op, i18n.MsgUserNotFound, ErrNotFound)
	}

	next := make([]User, 0, len(m.users)-1)
	next = append(next, m.users[:i]...)
	next = append(next, m.users[i+1:]...)
	if err := m.saveUsers(ctx, next); err != nil {
		return m.fail(op, i18n.MsgStorageFailure, err)
	}
	m.users = next

	if m.current != nil && m.current.ID == userID {
		if err := m.clearSession(ctx); err != nil {
			return m.fail(op, i18n.MsgStorageFailure, err)
		}
	}

	m.log.Info("user deleted", zap.String("id", userID))
	return m.ok(op, i18n.MsgUserDeleted)
}

// UpdateUser merges the non-nil fields of upd into the user and stamps
// UpdatedAt. Username uniqueness is not rechecked.
func (m *Manager) UpdateUser(ctx context.Context, userID string, upd UserUpdate) Result {
	const op = "update"
	i, ok := m.findByID(userID)
	if !ok {
		return m.fail(op, i18n.MsgUserNotFound, ErrNotFound)
	}
	for _, v := range []*string{upd.FullName, upd.Username, upd.Password} {
		if v != nil && *v == "" {
			return m.fail(op, i18n.MsgFieldsRequired, ErrValidation)
		}
	}

	u := m.users[i]
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), m.cost)
		if err != nil {
			return m.fail(op, i18n.MsgStorageFailure, fmt.Errorf("hash password: %w", err))
		}
		u.Password = string(hash)
	}
	now := m.now().UTC()
	u.UpdatedAt = &now

	next := append([]User(nil), m.users...)
	next[i] = u
	if err := m.saveUsers(ctx, next); err != nil {
		return m.fail(op, i18n.MsgStorageFailure, err)
	}
	m.users = next

	if m.current != nil && m.current.ID == userID {
		s := u.session()
		if err := m.saveSession(ctx, &s); err != nil {
			return m.fail(op, i18n.MsgStorageFailure, err)
		}
		m.current = &s
	}

	m.log.Info("user updated", zap.String("id", userID))
	return m.ok(op, i18n.MsgUserUpdated)
}

func (m *Manager) IsLoggedIn() bool { return m.loggedIn }

// CurrentUser returns the session user, without its password.
func (m *Manager) CurrentUser() (User, bool) {
	if m.current == nil {
		return User{}, false
	}
	return *m.current, true
}

// Users returns a copy of the user list in registration order.
func (m *Manager) Users() []User {
	return append([]User(nil), m.users...)
}

func (m *Manager) findByUsername(username string) (int, bool) {
	for i, u := range m.users {
		if u.Username == username {
			return i, true
		}
	}
	return -1, false
}

func (m *Manager) findByID(userID string) (int, bool) {
	for i, u := range m.users {
		if u.ID == userID {
			return i, true
		}
	}
	return -1, false
}

// checkPassword compares against the bcrypt hash of user i. A legacy
// plaintext password is compared exactly and rehashed when it matches.
func (m *Manager) checkPassword(ctx context.Context, i int, password string) bool {
	stored := m.users[i].Password
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	if stored == "" || stored != password {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return true
	}
	next := append([]User(nil), m.users...)
	next[i].Password = string(hash)
	if err := m.saveUsers(ctx, next); err != nil {
		m.log.Warn("could not upgrade legacy password", zap.String("id", next[i].ID), zap.Error(err))
		return true
	}
	m.users = next
	return true
}

func (m *Manager) saveUsers(ctx context.Context, users []User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyUsers, err)
	}
	err = m.store.Put(ctx, KeyUsers, data)
	m.metrics.SnapshotWritten(KeyUsers, err)
	if err != nil {
		return fmt.Errorf("write %s: %w", KeyUsers, err)
	}
	return nil
}

func (m *Manager) saveSession(ctx context.Context, u *User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyCurrentUser, err)
	}
	if err := m.store.Put(ctx, KeyCurrentUser, data); err != nil {
		return fmt.Errorf("write %s: %w", KeyCurrentUser, err)
	}
	if err := m.store.Put(ctx, KeyIsLoggedIn, []byte("true")); err != nil {
		return fmt.Errorf("write %s: %w", KeyIsLoggedIn, err)
	}
	return nil
}

func (m *Manager) clearSession(ctx context.Context) error {
	if err := m.store.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("delete %s: %w", KeyCurrentUser, err)
	}
	if err := m.store.Delete(ctx, KeyIsLoggedIn); err != nil {
		return fmt.Errorf("delete %s: %w", KeyIsLoggedIn, err)
	}
	m.current = nil
	m.loggedIn = false
	return nil
}

func (m *Manager) ok(op, msgID string) Result {
	m.metrics.UserOperation(op, true)
	return Result{Success: true, Message: m.tr.T(msgID, nil)}
}

func (m *Manager) fail(op, msgID string, err error) Result {
	m.metrics.UserOperation(op, false)
	if msgID == i18n.MsgStorageFailure {
		m.log.Error("user operation failed", zap.String("op", op), zap.Error(err))
	} else {
		m.log.Debug("user operation rejected", zap.String("op", op), zap.Error(err))
	}
	return Result{
		Success: false,
		Message: m.tr.T(msgID, map[string]any{"Error": err.Error()}),
		Err:     err,
	}
}
