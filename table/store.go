package table

// A Store maps table names to tables, preserving the order in which
// tables were added so serialization is stable. One filter invocation
// owns and mutates one store; construct a fresh store per dataset.
type Store struct {
	tables map[string]*Table
	names  []string
}

func NewStore() *Store {
	return &Store{tables: map[string]*Table{}}
}

func (s *Store) Add(t *Table) {
	if _, found := s.tables[t.Name]; !found {
		s.names = append(s.names, t.Name)
	}
	s.tables[t.Name] = t
}

func (s *Store) Table(name string) (*Table, bool) {
	t, found := s.tables[name]
	return t, found
}

func (s *Store) Has(name string) bool {
	_, found := s.tables[name]
	return found
}

func (s *Store) Names() []string {
	return append([]string{}, s.names...)
}

func (s *Store) Len() int {
	return len(s.tables)
}
