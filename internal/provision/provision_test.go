package provision

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/irislab/irismapper-admin/internal/db/models"
	"github.com/irislab/irismapper-admin/internal/identity"
	"github.com/irislab/irismapper-admin/internal/profile"
)

// fakeGateway counts sign-up calls.
type fakeGateway struct {
	signUps int
	err     error
}

func (g *fakeGateway) SignIn(_ context.Context, _, _ string) (*identity.Session, error) {
	return nil, identity.ErrInvalidCredentials
}

func (g *fakeGateway) SignUp(_ context.Context, email, _ string) (*identity.Session, error) {
	g.signUps++

	if g.err != nil {
		return nil, g.err
	}

	return &identity.Session{UID: "new-uid", Email: email}, nil
}

func (g *fakeGateway) SignOut(_ context.Context, _ string) error { return nil }

func (g *fakeGateway) Subscribe(_ func(*identity.Session)) func() { return func() {} }

// fakeStore records Set calls and can fail them.
type fakeStore struct {
	sets   []*models.Profile
	setErr error
}

func (s *fakeStore) Get(_ context.Context, _ string) (*models.Profile, error) {
	return nil, profile.ErrNotFound
}

func (s *fakeStore) All(_ context.Context) ([]*models.Profile, error) { return nil, nil }

func (s *fakeStore) Set(_ context.Context, p *models.Profile) error {
	if s.setErr != nil {
		return s.setErr
	}

	s.sets = append(s.sets, p)

	return nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, _ string, _ models.Status, _ string) error {
	return nil
}

func (s *fakeStore) FindAdminByEmail(_ context.Context, _ string) (*models.Profile, error) {
	return nil, profile.ErrNotFound
}

func TestCreateValidInput(t *testing.T) {
	gw := &fakeGateway{}
	store := &fakeStore{}
	p := New(gw, store)

	in := Input{Name: "Ann", Email: "ann@example.com", Password: "longenough"}

	sess, err := p.Create(context.Background(), in, "admin@irislab.com")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if sess == nil || sess.UID != "new-uid" {
		t.Fatalf("expected session for new account, got %+v", sess)
	}

	if len(store.sets) != 1 {
		t.Fatalf("expected one profile write, got %d", len(store.sets))
	}

	prof := store.sets[0]
	if prof.Status != models.StatusActive || prof.IsAdmin {
		t.Errorf("new profile must be active and non-admin, got %+v", prof)
	}

	if prof.ModifiedBy != "admin@irislab.com" {
		t.Errorf("profile should record the acting admin, got %q", prof.ModifiedBy)
	}
}

func TestCreateMissingFields(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"no name", Input{Email: "a@b.c", Password: "longenough"}},
		{"no email", Input{Name: "Ann", Password: "longenough"}},
		{"no password", Input{Name: "Ann", Email: "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			p := New(gw, &fakeStore{})

			_, err := p.Create(context.Background(), tt.in, "admin")

			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Message != "All fields are required" {
				t.Fatalf("expected required-fields message, got %v", err)
			}

			if gw.signUps != 0 {
				t.Error("validation failure must not reach the identity backend")
			}
		})
	}
}

func TestCreateShortPassword(t *testing.T) {
	gw := &fakeGateway{}
	p := New(gw, &fakeStore{})

	in := Input{Name: "Ann", Email: "ann@example.com", Password: "short7!"}

	_, err := p.Create(context.Background(), in, "admin")

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Message != "Password must be at least 8 characters" {
		t.Fatalf("expected password-length message, got %v", err)
	}

	if gw.signUps != 0 {
		t.Error("short password must never reach the identity backend")
	}
}

func TestCreateIdentityFailureWritesNoProfile(t *testing.T) {
	gw := &fakeGateway{err: identity.ErrEmailAlreadyInUse}
	store := &fakeStore{}
	p := New(gw, store)

	in := Input{Name: "Ann", Email: "taken@example.com", Password: "longenough"}

	_, err := p.Create(context.Background(), in, "admin")
	if !errors.Is(err, identity.ErrEmailAlreadyInUse) {
		t.Fatalf("identity error should surface, got %v", err)
	}

	if len(store.sets) != 0 {
		t.Error("no profile may be written when identity creation fails")
	}
}

func TestCreateProfileWriteFailureStillSucceeds(t *testing.T) {
	gw := &fakeGateway{}
	store := &fakeStore{setErr: errors.New("backend down")}
	p := New(gw, store)

	in := Input{Name: "Ann", Email: "ann@example.com", Password: "longenough"}

	sess, err := p.Create(context.Background(), in, "admin")
	if err != nil {
		t.Fatalf("profile write failure must not fail the creation, got %v", err)
	}

	if sess == nil {
		t.Fatal("expected session despite profile write failure")
	}
}

func TestRandomPassword(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 32; i++ {
		pw := RandomPassword()

		if len(pw) != passwordLength {
			t.Fatalf("password length = %d, want %d", len(pw), passwordLength)
		}

		for _, r := range pw {
			if !strings.ContainsRune(passwordChars, r) {
				t.Fatalf("password %q contains %q outside the alphabet", pw, r)
			}
		}

		seen[pw] = true
	}

	if len(seen) < 2 {
		t.Error("passwords should not repeat")
	}
}
