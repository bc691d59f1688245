package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/irislab/irismapper-admin/internal/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.Account{}); err != nil {
		t.Fatalf("failed to migrate account model: %v", err)
	}

	return db
}

func TestSignUpAndSignIn(t *testing.T) {
	g := NewLocalGateway(newTestDB(t))
	ctx := context.Background()

	created, err := g.SignUp(ctx, "ann@example.com", "s3cr3tpass")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	if created.UID == "" || created.Email != "ann@example.com" {
		t.Fatalf("unexpected session from SignUp: %+v", created)
	}

	sess, err := g.SignIn(ctx, "ann@example.com", "s3cr3tpass")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	if sess.UID != created.UID {
		t.Errorf("SignIn UID = %q, want %q", sess.UID, created.UID)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	g := NewLocalGateway(newTestDB(t))
	ctx := context.Background()

	if _, err := g.SignUp(ctx, "ann@example.com", "s3cr3tpass"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	_, err := g.SignIn(ctx, "ann@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = g.SignIn(ctx, "nobody@example.com", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email should give ErrInvalidCredentials, got %v", err)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	g := NewLocalGateway(newTestDB(t))
	ctx := context.Background()

	if _, err := g.SignUp(ctx, "ann@example.com", "s3cr3tpass"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	_, err := g.SignUp(ctx, "ann@example.com", "otherpass")
	if !errors.Is(err, ErrEmailAlreadyInUse) {
		t.Fatalf("expected ErrEmailAlreadyInUse, got %v", err)
	}
}

func TestSubscribeNotifications(t *testing.T) {
	g := NewLocalGateway(newTestDB(t))
	ctx := context.Background()

	if _, err := g.SignUp(ctx, "ann@example.com", "s3cr3tpass"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	var events []*Session

	unsubscribe := g.Subscribe(func(sess *Session) {
		events = append(events, sess)
	})

	// sign-up must not notify, sign-in and sign-out must
	if _, err := g.SignUp(ctx, "bob@example.com", "s3cr3tpass"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}

	if len(events) != 0 {
		t.Fatalf("SignUp must not notify subscribers, got %d events", len(events))
	}

	if _, err := g.SignIn(ctx, "ann@example.com", "s3cr3tpass"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	if err := g.SignOut(ctx, "whatever"); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}

	if len(events) != 2 || events[0] == nil || events[1] != nil {
		t.Fatalf("expected session then nil, got %v", events)
	}

	unsubscribe()
	unsubscribe() // safe to call twice

	if err := g.SignOut(ctx, "whatever"); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}

	if len(events) != 2 {
		t.Errorf("unsubscribed listener must not receive events, got %d", len(events))
	}
}
