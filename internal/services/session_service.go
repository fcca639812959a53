package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/quitpath/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionCorrupt  = errors.New("session data is corrupt")
	ErrSessionToken    = errors.New("session token is required")
)

const DefaultSessionTTL = 7 * 24 * time.Hour

type SessionStore interface {
	Create(session *models.Session) error
	FindByID(id string) (models.Session, error)
	Touch(id string, seenAt time.Time) error
	Delete(id string) error
	DeleteExpired(now time.Time) (int64, error)
}

type SessionService struct {
	store SessionStore
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionService(store SessionStore, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{store: store, ttl: ttl, now: time.Now}
}

// ActiveSession is a resolved session: the bearer token plus the user the
// backend returned at login.
type ActiveSession struct {
	ID        string
	Token     string
	User      models.User
	ExpiresAt time.Time
}

// Start stores a new session for the token. The session never outlives the
// token's own expiry when the token carries one.
func (service *SessionService) Start(token string, user models.User) (ActiveSession, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ActiveSession{}, ErrSessionToken
	}

	user.Role = user.NormalizedRole()
	userJSON, err := json.Marshal(user)
	if err != nil {
		return ActiveSession{}, fmt.Errorf("encode session user: %w", err)
	}

	now := service.now().UTC()
	expiresAt := now.Add(service.ttl)
	if tokenExpiry, ok := TokenExpiry(token); ok && tokenExpiry.Before(expiresAt) {
		expiresAt = tokenExpiry.UTC()
	}
	if !expiresAt.After(now) {
		return ActiveSession{}, ErrSessionExpired
	}

	session := models.Session{
		ID:         uuid.NewString(),
		Token:      token,
		UserJSON:   string(userJSON),
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  expiresAt,
	}
	if err := service.store.Create(&session); err != nil {
		return ActiveSession{}, fmt.Errorf("create session: %w", err)
	}
	return ActiveSession{ID: session.ID, Token: token, User: user, ExpiresAt: expiresAt}, nil
}

// Resolve loads a live session. Expired and unreadable rows are removed.
func (service *SessionService) Resolve(id string) (ActiveSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ActiveSession{}, ErrSessionNotFound
	}

	session, err := service.store.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ActiveSession{}, ErrSessionNotFound
		}
		return ActiveSession{}, fmt.Errorf("load session: %w", err)
	}

	now := service.now().UTC()
	if !session.ExpiresAt.After(now) {
		_ = service.store.Delete(id)
		return ActiveSession{}, ErrSessionExpired
	}

	var user models.User
	if err := json.Unmarshal([]byte(session.UserJSON), &user); err != nil || strings.TrimSpace(session.Token) == "" {
		_ = service.store.Delete(id)
		return ActiveSession{}, ErrSessionCorrupt
	}
	user.Role = user.NormalizedRole()

	_ = service.store.Touch(id, now)
	return ActiveSession{ID: session.ID, Token: session.Token, User: user, ExpiresAt: session.ExpiresAt}, nil
}

// IsSessionRejected reports whether err means the session is gone for good,
// as opposed to a storage failure.
func IsSessionRejected(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrSessionCorrupt)
}

func (service *SessionService) End(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return service.store.Delete(id)
}

func (service *SessionService) Prune() (int64, error) {
	return service.store.DeleteExpired(service.now().UTC())
}
