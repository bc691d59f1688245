package roster

// PrefStore persists the sort preference between page loads.
type PrefStore interface {
	// Load returns the stored preference, or ok=false when none is stored.
	Load() (pref SortPref, ok bool)
	// Save stores the preference.
	Save(pref SortPref)
}

// MemoryPrefs is an in-process PrefStore.
type MemoryPrefs struct {
	pref SortPref
	set  bool
}

// Load implements PrefStore.
func (m *MemoryPrefs) Load() (SortPref, bool) {
	return m.pref, m.set
}

// Save implements PrefStore.
func (m *MemoryPrefs) Save(pref SortPref) {
	m.pref = pref
	m.set = true
}
