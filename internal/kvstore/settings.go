package kvstore

// The display-mode preference lives under its own key, separate from the
// cart snapshot which is owned by the cart store.
const settingsKey = "main"

const (
	ViewGrid = "grid"
	ViewList = "list"
)

// Settings reads and writes UI preferences on top of a Store.
type Settings struct {
	store Store
}

func NewSettings(store Store) *Settings {
	return &Settings{store: store}
}

// View returns the persisted display mode, defaulting to grid.
func (s *Settings) View() string {
	v, err := s.store.Get(settingsKey)
	if err != nil || (v != ViewGrid && v != ViewList) {
		return ViewGrid
	}
	return v
}

// SetView persists the display mode. Unknown values are ignored.
func (s *Settings) SetView(view string) error {
	if view != ViewGrid && view != ViewList {
		return nil
	}
	return s.store.Set(settingsKey, view)
}
