package interpreter

// StoreSize is the number of variable slots available to a program.
const StoreSize = 256

// Store maps scanner-assigned variable ids to their current values. Every
// variable starts at 0; the store lives for the whole run and is only
// mutated by declaration and assignment statements.
type Store struct {
	cells [StoreSize]int
}

func NewStore() *Store {
	return &Store{}
}

// Get returns the current value for id. Out-of-range ids are reported to
// the caller instead of being read blind.
func (s *Store) Get(id int) (int, bool) {
	if id < 0 || id >= StoreSize {
		return 0, false
	}
	return s.cells[id], true
}

// Set stores value at id and reports whether id was in range.
func (s *Store) Set(id, value int) bool {
	if id < 0 || id >= StoreSize {
		return false
	}
	s.cells[id] = value
	return true
}
