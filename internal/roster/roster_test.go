package roster

import (
	"testing"
	"time"

	"github.com/irislab/irismapper-admin/internal/db/models"
)

func sampleProfiles() []*models.Profile {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	return []*models.Profile{
		{UID: "1", Name: "Ann", Email: "ann@example.com", Status: models.StatusActive, CreatedAt: base},
		{UID: "2", Name: "bob", Email: "bob@example.com", Status: models.StatusInactive, CreatedAt: base.Add(time.Hour)},
		{UID: "3", Name: "Cleo", Email: "cleo@example.com", Status: models.StatusActive},
		{UID: "4", Name: "Team", Email: "team@irislab.com", Status: models.StatusActive, IsAdmin: true},
	}
}

func TestFilterStatus(t *testing.T) {
	f := Filter{ShowActive: true, ShowInactive: false}

	rows := Arrange(sampleProfiles(), f, DefaultSort())
	for _, p := range rows {
		if !p.Active() {
			t.Errorf("inactive profile %q rendered with active-only filter", p.Name)
		}
	}

	if len(rows) != 2 {
		t.Errorf("expected 2 active non-admin rows, got %d", len(rows))
	}
}

func TestFilterSearchMatchesNameOrEmail(t *testing.T) {
	f := DefaultFilter()
	f.Search = "an"

	rows := Arrange(sampleProfiles(), f, DefaultSort())
	if len(rows) != 1 || rows[0].Name != "Ann" {
		t.Fatalf("search %q: expected only Ann, got %d rows", f.Search, len(rows))
	}

	f.Search = "BOB@"

	rows = Arrange(sampleProfiles(), f, DefaultSort())
	if len(rows) != 1 || rows[0].Name != "bob" {
		t.Fatalf("search should match email case-insensitively, got %d rows", len(rows))
	}
}

func TestArrangeExcludesAdmins(t *testing.T) {
	rows := Arrange(sampleProfiles(), DefaultFilter(), DefaultSort())
	for _, p := range rows {
		if p.IsAdmin {
			t.Errorf("admin account %q must never appear in the roster", p.Email)
		}
	}
}

func TestArrangeSortNameCaseInsensitive(t *testing.T) {
	rows := Arrange(sampleProfiles(), DefaultFilter(), DefaultSort())

	want := []string{"Ann", "bob", "Cleo"}
	for i, name := range want {
		if rows[i].Name != name {
			t.Fatalf("row %d = %q, want %q", i, rows[i].Name, name)
		}
	}
}

func TestArrangeSortCreatedMissingFirst(t *testing.T) {
	pref := SortPref{Field: FieldCreated, Direction: DirectionAsc}

	rows := Arrange(sampleProfiles(), DefaultFilter(), pref)
	if rows[0].Name != "Cleo" {
		t.Errorf("profile without creation timestamp should sort first, got %q", rows[0].Name)
	}
}

func TestArrangeDoesNotMutateInput(t *testing.T) {
	list := sampleProfiles()
	first := list[0].UID

	Arrange(list, DefaultFilter(), SortPref{Field: FieldEmail, Direction: DirectionDesc})

	if list[0].UID != first {
		t.Error("Arrange must not reorder the input slice")
	}
}

func TestSortPrefClick(t *testing.T) {
	pref := DefaultSort()

	pref = pref.Click(FieldName)
	if pref.Field != FieldName || pref.Direction != DirectionDesc {
		t.Fatalf("clicking the current field should flip direction, got %+v", pref)
	}

	pref = pref.Click(FieldEmail)
	if pref.Field != FieldEmail || pref.Direction != DirectionAsc {
		t.Fatalf("clicking another field should reset to ascending, got %+v", pref)
	}
}

func TestSortPrefClickTwiceReverses(t *testing.T) {
	pref := DefaultSort().Click(FieldName).Click(FieldName)
	if pref.Field != FieldName || pref.Direction != DirectionAsc {
		t.Fatalf("two clicks should come back to ascending, got %+v", pref)
	}

	asc := Arrange(sampleProfiles(), DefaultFilter(), SortPref{Field: FieldName, Direction: DirectionAsc})
	desc := Arrange(sampleProfiles(), DefaultFilter(), SortPref{Field: FieldName, Direction: DirectionDesc})

	for i := range asc {
		if asc[i].UID != desc[len(desc)-1-i].UID {
			t.Fatal("descending order should reverse ascending order")
		}
	}
}

func TestSortPrefValid(t *testing.T) {
	if (SortPref{Field: "bogus", Direction: DirectionAsc}).Valid() {
		t.Error("unknown field should not validate")
	}

	if (SortPref{Field: FieldName, Direction: "sideways"}).Valid() {
		t.Error("unknown direction should not validate")
	}

	if !(SortPref{Field: FieldCreated, Direction: DirectionDesc}).Valid() {
		t.Error("createdAt/desc should validate")
	}
}
