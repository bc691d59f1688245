package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/irislab/irismapper-admin/internal/db/models"
)

// LocalGateway implements Gateway against the local accounts table with
// Argon2id hashed credentials.
type LocalGateway struct {
	db *gorm.DB

	mu     sync.Mutex
	nextID int
	subs   map[int]func(*Session)
}

var _ Gateway = (*LocalGateway)(nil)

// NewLocalGateway creates a new local identity gateway.
func NewLocalGateway(db *gorm.DB) *LocalGateway {
	return &LocalGateway{
		db:   db,
		subs: make(map[int]func(*Session)),
	}
}

// SignIn authenticates the credentials against the accounts table.
// Subscribers are notified of the new session before SignIn returns.
func (g *LocalGateway) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var account models.Account

	err := g.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	if !account.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	session := &Session{UID: account.UID, Email: account.Email}
	g.notify(session)

	return session, nil
}

// SignUp creates a new account with a fresh identity.
// It does not switch the caller's session; subscribers are not notified.
func (g *LocalGateway) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var existing models.Account

	err := g.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailAlreadyInUse
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	uid, err := newUID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account id: %w", err)
	}

	account := models.Account{
		UID:      uid,
		Email:    email,
		Password: models.HashPassword(password),
	}

	if err := g.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &Session{UID: account.UID, Email: account.Email}, nil
}

// SignOut ends the session of the given identity and notifies subscribers
// with a nil session.
func (g *LocalGateway) SignOut(_ context.Context, _ string) error {
	g.notify(nil)

	return nil
}

// Subscribe registers a session-change listener. The returned handle removes
// exactly this listener and is safe to call more than once.
func (g *LocalGateway) Subscribe(fn func(*Session)) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.subs[id] = fn

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()

		delete(g.subs, id)
	}
}

// notify delivers a session change to all subscribers in registration order.
// Delivery is synchronous; one evaluation is in flight per notification.
func (g *LocalGateway) notify(session *Session) {
	g.mu.Lock()

	ids := make([]int, 0, len(g.subs))
	for id := range g.subs {
		ids = append(ids, id)
	}

	// registration order
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}

	fns := make([]func(*Session), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, g.subs[id])
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

// newUID generates a new random 128 bit identity.
func newUID() (string, error) {
	b := make([]byte, 16) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
