package inmemoryframe

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/dataframe"
)

type rawColumn struct {
	values column.Array
	arity  int
}

// Store implements dataframe.Store using maps and a mutex for thread-safe
// concurrent access.
type Store struct {
	mu      sync.RWMutex
	counts  map[column.ComponentKind]int
	columns map[colid.ID]rawColumn
	derived map[colid.ID]dataframe.Reader
	order   []colid.ID // derived columns in announcement order
	gen     atomic.Uint64
}

var (
	_ dataframe.Store        = (*Store)(nil)
	_ dataframe.Generational = (*Store)(nil)
)

// New creates an empty store with zero vertices and edges.
func New() *Store {
	return &Store{
		counts:  map[column.ComponentKind]int{column.Point: 0, column.Edge: 0},
		columns: make(map[colid.ID]rawColumn),
		derived: make(map[colid.ID]dataframe.Reader),
	}
}

// SetNumElements sets the number of components of the given kind.
func (s *Store) SetNumElements(kind column.ComponentKind, n int) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown component kind %q", kind)
	}
	if n < 0 {
		return fmt.Errorf("element count cannot be negative, got %d", n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[kind] = n
	s.gen.Add(1)
	return nil
}

// SetColumn stores a raw column. Its length must be a multiple of arity.
// Replacing an existing column is allowed.
func (s *Store) SetColumn(id colid.ID, values column.Array, arity int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if arity < 1 {
		return fmt.Errorf("raw column '%s': arity must be at least 1, got %d", id, arity)
	}
	if values.IsZero() {
		return fmt.Errorf("raw column '%s': values are missing", id)
	}
	if values.Len()%arity != 0 {
		return fmt.Errorf("raw column '%s': length %d is not a multiple of arity %d", id, values.Len(), arity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns[id] = rawColumn{values: values.Window(0, values.Len()), arity: arity}
	s.gen.Add(1)
	return nil
}

// Generation counts the writes made through SetColumn and SetNumElements.
func (s *Store) Generation() uint64 {
	return s.gen.Load()
}

// HasColumn reports whether a raw column is stored under id.
func (s *Store) HasColumn(id colid.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.columns[id]
	return ok
}

// Cell returns the arity-sized window of a raw column at index.
func (s *Store) Cell(ctx context.Context, index int, class colid.ComponentClass, name string) (column.Array, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := colid.New(class, name)
	raw, ok := s.columns[id]
	if !ok {
		return column.Array{}, &column.UnknownColumnError{ID: id}
	}
	count := raw.values.Len() / raw.arity
	if index < 0 || index >= count {
		return column.Array{}, &column.IndexError{ID: id, Index: index, Count: count}
	}
	return raw.values.Window(index*raw.arity, (index+1)*raw.arity), nil
}

// ColumnValues returns a copy of a raw column.
func (s *Store) ColumnValues(ctx context.Context, name string, class colid.ComponentClass) (column.Array, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id := colid.New(class, name)
	raw, ok := s.columns[id]
	if !ok {
		return column.Array{}, &column.UnknownColumnError{ID: id}
	}
	return raw.values.Window(0, raw.values.Len()), nil
}

// NumElements returns the number of vertices or edges.
func (s *Store) NumElements(ctx context.Context, kind column.ComponentKind) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("unknown component kind %q", kind)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[kind], nil
}

// RegisterDerivedColumn records that a derived column is served by reader.
func (s *Store) RegisterDerivedColumn(ctx context.Context, reader dataframe.Reader, class colid.ComponentClass, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := colid.New(class, name)
	if _, seen := s.derived[id]; !seen {
		s.order = append(s.order, id)
	}
	s.derived[id] = reader
}

// DerivedColumns returns the derived columns announced so far, in order.
func (s *Store) DerivedColumns() []colid.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]colid.ID, len(s.order))
	copy(out, s.order)
	return out
}

// Column returns the dense values of id, whether it is a derived column
// announced through RegisterDerivedColumn or a raw column. A derived column
// shadows a raw column with the same identity.
func (s *Store) Column(ctx context.Context, id colid.ID) (column.Array, error) {
	s.mu.RLock()
	raw, isRaw := s.columns[id]
	reader, isDerived := s.derived[id]
	s.mu.RUnlock()

	switch {
	case isDerived:
		return reader.Dense(ctx, id)
	case isRaw:
		return raw.values.Window(0, raw.values.Len()), nil
	}
	return column.Array{}, &column.UnknownColumnError{ID: id}
}

// RawArity returns the per-component arity of a raw column.
func (s *Store) RawArity(id colid.ID) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.columns[id]
	return raw.arity, ok
}

// RawColumns returns the identities of all raw columns in canonical order.
func (s *Store) RawColumns() []colid.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]colid.ID, 0, len(s.columns))
	for id := range s.columns {
		ids = append(ids, id)
	}
	colid.Sort(ids)
	return ids
}
