package ast

// SymbolTable interns identifier names to small dense ids, in first-seen
// order. Variable nodes carry only the id; the table maps back to names for
// tooling.
type SymbolTable struct {
	ids   map[string]int
	names []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{ids: make(map[string]int)}
}

// Intern returns the id for name, assigning the next free id on first use.
func (t *SymbolTable) Intern(name string) int {
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := len(t.names)
	t.ids[name] = id
	t.names = append(t.names, name)
	return id
}

// Name returns the identifier spelling for an id.
func (t *SymbolTable) Name(id int) (string, bool) {
	if id < 0 || id >= len(t.names) {
		return "", false
	}
	return t.names[id], true
}

// Len is the number of distinct identifiers seen so far.
func (t *SymbolTable) Len() int {
	return len(t.names)
}
