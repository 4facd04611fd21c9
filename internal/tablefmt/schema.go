package tablefmt

import (
	"strings"
)

// Column maps one field of a record type T to a named table column.
type Column[T any] struct {
	Field    string // Go field identifier
	External string // explicit column name, overrides Field when set
	Kind     Kind

	encode func(rec *T, f Format) string
	decode func(rec *T, raw string, f Format) error
}

// Field builds a column for the field that ptr addresses.
func Field[T, V any](field string, ptr func(*T) *V, codec Codec[V]) Column[T] {
	return Computed(field,
		func(rec *T) V { return *ptr(rec) },
		func(rec *T, v V) { *ptr(rec) = v },
		codec,
	)
}

// Computed builds a column whose value is derived by get and stored by set.
func Computed[T, V any](field string, get func(*T) V, set func(*T, V), codec Codec[V]) Column[T] {
	return Column[T]{
		Field: field,
		Kind:  codec.Kind,
		encode: func(rec *T, f Format) string {
			return codec.Encode(get(rec), f)
		},
		decode: func(rec *T, raw string, f Format) error {
			// Empty optional cells leave the field untouched.
			if codec.Kind == KindOptional && strings.TrimSpace(raw) == "" {
				return nil
			}
			v, err := codec.Decode(raw, f)
			if err != nil {
				return err
			}
			set(rec, v)
			return nil
		},
	}
}

// As returns a copy of the column with an explicit external name.
func (c Column[T]) As(name string) Column[T] {
	c.External = name
	return c
}

// Name is the header name of the column.
func (c Column[T]) Name() string {
	if c.External != "" {
		return c.External
	}
	return c.Field
}

// Encode returns the cell text of the column for rec.
func (c Column[T]) Encode(rec *T, f Format) string {
	return c.encode(rec, f)
}

// Decode parses raw and stores the value in rec.
func (c Column[T]) Decode(rec *T, raw string, f Format) error {
	return c.decode(rec, raw, f)
}

// Schema is the ordered column list of a record type.
type Schema[T any] struct {
	columns []Column[T]
	index   map[string]int
}

// NewSchema validates cols and returns them as a schema. Column names must be
// non-empty and unique.
func NewSchema[T any](cols ...Column[T]) (*Schema[T], error) {
	s := &Schema[T]{
		columns: make([]Column[T], 0, len(cols)),
		index:   make(map[string]int, len(cols)),
	}

	for _, c := range cols {
		name := c.Name()
		if name == "" {
			return nil, &SchemaError{Column: c.Field, Message: "empty column name"}
		}
		if c.encode == nil || c.decode == nil {
			return nil, &SchemaError{Column: name, Message: "column has no codec"}
		}
		if _, dup := s.index[name]; dup {
			return nil, &SchemaError{Column: name, Message: "duplicate column name"}
		}
		s.index[name] = len(s.columns)
		s.columns = append(s.columns, c)
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// Use it for package-level schema tables.
func MustSchema[T any](cols ...Column[T]) *Schema[T] {
	s, err := NewSchema(cols...)
	if err != nil {
		panic(err)
	}
	return s
}

// Columns returns the columns in declaration order.
func (s *Schema[T]) Columns() []Column[T] {
	out := make([]Column[T], len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns the header names in declaration order.
func (s *Schema[T]) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name()
	}
	return names
}

// Lookup returns the column with the given header name.
func (s *Schema[T]) Lookup(name string) (Column[T], bool) {
	i, ok := s.index[name]
	if !ok {
		return Column[T]{}, false
	}
	return s.columns[i], true
}

// Len returns the number of columns.
func (s *Schema[T]) Len() int {
	return len(s.columns)
}
