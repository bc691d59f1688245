package roster

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/irislab/irismapper-admin/internal/db/models"
	"github.com/irislab/irismapper-admin/internal/profile"
)

// memStore is an in-memory profile.Store for controller tests.
type memStore struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
	allErr   error
}

func newMemStore(list []*models.Profile) *memStore {
	m := &memStore{profiles: make(map[string]*models.Profile)}
	for _, p := range list {
		m.profiles[p.UID] = p
	}

	return m
}

func (m *memStore) Get(_ context.Context, uid string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[uid]
	if !ok {
		return nil, profile.ErrNotFound
	}

	cp := *p

	return &cp, nil
}

func (m *memStore) All(_ context.Context) ([]*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.allErr != nil {
		return nil, m.allErr
	}

	out := make([]*models.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		cp := *p
		out = append(out, &cp)
	}

	return out, nil
}

func (m *memStore) Set(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *p
	m.profiles[p.UID] = &cp

	return nil
}

func (m *memStore) UpdateStatus(_ context.Context, uid string, status models.Status, modifiedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[uid]
	if !ok {
		return profile.ErrNotFound
	}

	p.Status = status
	p.ModifiedBy = modifiedBy
	p.LastModified = time.Now().UTC()

	return nil
}

func (m *memStore) FindAdminByEmail(_ context.Context, _ string) (*models.Profile, error) {
	return nil, profile.ErrNotFound
}

// recordView records every view transition.
type recordView struct {
	mu     sync.Mutex
	states []string
	rows   []*models.Profile
}

func (v *recordView) Loading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, "loading")
}

func (v *recordView) Rows(list []*models.Profile) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, "rows")
	v.rows = list
}

func (v *recordView) Empty() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, "empty")
}

func (v *recordView) Error(_ error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.states = append(v.states, "error")
}

func (v *recordView) last() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.states) == 0 {
		return ""
	}

	return v.states[len(v.states)-1]
}

// answerConfirmer returns a fixed answer and remembers the prompt.
type answerConfirmer struct {
	answer bool
	name   string
	next   string
	asked  bool
}

func (c *answerConfirmer) Confirm(name, next string) bool {
	c.asked = true
	c.name = name
	c.next = next

	return c.answer
}

func TestControllerLoadRendersRows(t *testing.T) {
	store := newMemStore(sampleProfiles())
	view := &recordView{}
	ctrl := NewController(store, &MemoryPrefs{}, view, &answerConfirmer{}, "admin@irislab.com")

	ctrl.Load(context.Background())

	if view.last() != "rows" {
		t.Fatalf("expected rows state, got %q", view.last())
	}

	if len(view.rows) != 3 {
		t.Errorf("expected 3 non-admin rows, got %d", len(view.rows))
	}
}

func TestControllerLoadErrorState(t *testing.T) {
	store := newMemStore(nil)
	store.allErr = errors.New("backend down")
	view := &recordView{}
	ctrl := NewController(store, &MemoryPrefs{}, view, &answerConfirmer{}, "admin")

	ctrl.Load(context.Background())

	if view.last() != "error" {
		t.Fatalf("expected error state, got %q", view.last())
	}
}

func TestControllerLoadEmptyState(t *testing.T) {
	store := newMemStore(nil)
	view := &recordView{}
	ctrl := NewController(store, &MemoryPrefs{}, view, &answerConfirmer{}, "admin")

	ctrl.Load(context.Background())

	if view.last() != "empty" {
		t.Fatalf("expected empty state, got %q", view.last())
	}
}

func TestToggleStatusConfirmedWrites(t *testing.T) {
	store := newMemStore(sampleProfiles())
	view := &recordView{}
	confirm := &answerConfirmer{answer: true}
	ctrl := NewController(store, &MemoryPrefs{}, view, confirm, "admin@irislab.com")

	ctrl.ToggleStatus(context.Background(), "1")

	if !confirm.asked {
		t.Fatal("toggle must ask for confirmation")
	}

	if confirm.name != "Ann" || confirm.next != "inactive" {
		t.Errorf("prompt should name the user and destination status, got %q/%q", confirm.name, confirm.next)
	}

	p, _ := store.Get(context.Background(), "1")
	if p.Status != models.StatusInactive {
		t.Errorf("confirmed toggle should flip status, got %q", p.Status)
	}

	if p.ModifiedBy != "admin@irislab.com" {
		t.Errorf("toggle should record the acting admin, got %q", p.ModifiedBy)
	}

	if view.last() != "rows" {
		t.Errorf("roster should reload after toggle, last state %q", view.last())
	}
}

func TestToggleStatusDeclinedLeavesStatus(t *testing.T) {
	store := newMemStore(sampleProfiles())
	view := &recordView{}
	ctrl := NewController(store, &MemoryPrefs{}, view, &answerConfirmer{answer: false}, "admin")

	ctrl.ToggleStatus(context.Background(), "1")

	p, _ := store.Get(context.Background(), "1")
	if p.Status != models.StatusActive {
		t.Errorf("declined toggle must not change status, got %q", p.Status)
	}

	// the roster still reloads to reset the optimistic toggle state
	if view.last() != "rows" {
		t.Errorf("roster should reload after declined toggle, last state %q", view.last())
	}
}

func TestToggleStatusUnknownUserStillReloads(t *testing.T) {
	store := newMemStore(sampleProfiles())
	view := &recordView{}
	confirm := &answerConfirmer{answer: true}
	ctrl := NewController(store, &MemoryPrefs{}, view, confirm, "admin")

	ctrl.ToggleStatus(context.Background(), "ghost")

	if confirm.asked {
		t.Error("unknown user must not reach the confirmation step")
	}

	if view.last() != "rows" {
		t.Errorf("roster should reload even when the lookup fails, last state %q", view.last())
	}
}

func TestSetSearchDebouncesReload(t *testing.T) {
	store := newMemStore(sampleProfiles())
	view := &recordView{}
	ctrl := NewController(store, &MemoryPrefs{}, view, &answerConfirmer{}, "admin")

	ctx := context.Background()
	ctrl.SetSearch(ctx, "a")
	ctrl.SetSearch(ctx, "an")
	ctrl.SetSearch(ctx, "ann")

	time.Sleep(2 * searchDelay)

	view.mu.Lock()
	loads := 0
	for _, s := range view.states {
		if s == "loading" {
			loads++
		}
	}
	view.mu.Unlock()

	if loads != 1 {
		t.Errorf("typing burst should cause exactly one reload, got %d", loads)
	}

	if view.last() != "rows" {
		t.Fatalf("expected rows after debounce, got %q", view.last())
	}

	if len(view.rows) != 1 || view.rows[0].Name != "Ann" {
		t.Errorf("search %q should leave only Ann, got %d rows", "ann", len(view.rows))
	}
}

func TestSetStatusAppliesToDebouncedReload(t *testing.T) {
	store := newMemStore(sampleProfiles())
	view := &recordView{}
	ctrl := NewController(store, &MemoryPrefs{}, view, &answerConfirmer{}, "admin")

	ctrl.SetStatus(false, true)
	ctrl.SetSearch(context.Background(), "")

	time.Sleep(2 * searchDelay)

	if view.last() != "rows" {
		t.Fatalf("expected rows after debounce, got %q", view.last())
	}

	if len(view.rows) != 1 || view.rows[0].Name != "bob" {
		t.Errorf("inactive-only filter should leave only bob, got %d rows", len(view.rows))
	}
}

func TestSortClickPersistsPreference(t *testing.T) {
	store := newMemStore(sampleProfiles())
	view := &recordView{}
	prefs := &MemoryPrefs{}
	ctrl := NewController(store, prefs, view, &answerConfirmer{}, "admin")

	ctrl.SortClick(context.Background(), FieldEmail)

	pref, ok := prefs.Load()
	if !ok || pref.Field != FieldEmail || pref.Direction != DirectionAsc {
		t.Fatalf("expected persisted email/asc, got %+v ok=%v", pref, ok)
	}

	ctrl.SortClick(context.Background(), FieldEmail)

	pref, _ = prefs.Load()
	if pref.Direction != DirectionDesc {
		t.Fatalf("second click should flip to descending, got %+v", pref)
	}
}
