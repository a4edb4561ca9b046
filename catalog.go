package qview

import "sync"

// The catalog is an in-memory mirror of a database's namespace
// (schemas, tables, columns), used to answer "what columns exist" without a
// round trip to the server. Each level of the hierarchy is synchronized
// independently: readers of unrelated schemas or tables never serialize
// against a writer updating another part of the tree.
//
// Name lookups are exact-match and case-sensitive, matching how identifiers
// come back from information_schema. Iteration order at every level is
// insertion order, and a table's column order is fixed at construction; this
// is what makes suggestion output deterministic.

// Column is a single catalog column.
type Column struct {
	Name string
	Type DataType
}

// Table holds an ordered column sequence. The name->column map keeps lookup
// O(1); the side slice keeps iteration in construction order.
type Table struct {
	Name string

	mu      sync.RWMutex
	columns map[string]Column
	order   []string
}

// NewTable constructs a table with an explicit ordered column list. The
// ordering is preserved exactly as provided and is never reordered by lookup.
func NewTable(name string, columns ...Column) *Table {
	t := &Table{
		Name:    name,
		columns: make(map[string]Column, len(columns)),
	}
	for _, col := range columns {
		if _, ok := t.columns[col.Name]; !ok {
			t.order = append(t.order, col.Name)
		}
		t.columns[col.Name] = col
	}
	return t
}

// Column looks up a column by exact name.
func (t *Table) Column(name string) (Column, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	col, ok := t.columns[name]
	return col, ok
}

// Columns returns the table's columns in their fixed construction order.
func (t *Table) Columns() []Column {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Column, 0, len(t.order))
	for _, name := range t.order {
		if col, ok := t.columns[name]; ok {
			out = append(out, col)
		}
	}
	return out
}

// InsertColumn upserts a column. A new name is appended to the iteration
// order; overwriting an existing name keeps its position.
func (t *Table) InsertColumn(col Column) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.columns[col.Name]; !ok {
		t.order = append(t.order, col.Name)
	}
	t.columns[col.Name] = col
}

// Schema owns a set of tables keyed by name.
type Schema struct {
	Name string

	mu     sync.RWMutex
	tables map[string]*Table
	order  []string
}

func NewSchema(name string) *Schema {
	return &Schema{
		Name:   name,
		tables: make(map[string]*Table),
	}
}

// Table looks up a table by exact name.
func (s *Schema) Table(name string) (*Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tables[name]
	return t, ok
}

// Tables returns the schema's tables in insertion order.
func (s *Schema) Tables() []*Table {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Table, 0, len(s.order))
	for _, name := range s.order {
		if t, ok := s.tables[name]; ok {
			out = append(out, t)
		}
	}
	return out
}

// InsertTable upserts a fully-formed table.
func (s *Schema) InsertTable(t *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[t.Name]; !ok {
		s.order = append(s.order, t.Name)
	}
	s.tables[t.Name] = t
}

// Database is the root of the catalog hierarchy. There is no process-wide
// instance; callers construct one (usually via buildCatalog) and inject it
// into Search.
type Database struct {
	Name string

	mu      sync.RWMutex
	schemas map[string]*Schema
	order   []string
}

func NewDatabase(name string) *Database {
	return &Database{
		Name:    name,
		schemas: make(map[string]*Schema),
	}
}

// Schema looks up a schema by exact name.
func (d *Database) Schema(name string) (*Schema, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.schemas[name]
	return s, ok
}

// Schemas returns the database's schemas in insertion order.
func (d *Database) Schemas() []*Schema {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Schema, 0, len(d.order))
	for _, name := range d.order {
		if s, ok := d.schemas[name]; ok {
			out = append(out, s)
		}
	}
	return out
}

// InsertSchema upserts a schema.
func (d *Database) InsertSchema(s *Schema) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.schemas[s.Name]; !ok {
		d.order = append(d.order, s.Name)
	}
	d.schemas[s.Name] = s
}

// schemaOrCreate returns the named schema, creating it if missing.
func (d *Database) schemaOrCreate(name string) *Schema {
	d.mu.RLock()
	s, ok := d.schemas[name]
	d.mu.RUnlock()
	if ok {
		return s
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	// racing writer may have created it between the locks
	if s, ok := d.schemas[name]; ok {
		return s
	}
	s = NewSchema(name)
	d.schemas[name] = s
	d.order = append(d.order, name)
	return s
}

// InsertTable upserts a table, creating the schema if necessary.
func (d *Database) InsertTable(schemaName string, t *Table) {
	d.schemaOrCreate(schemaName).InsertTable(t)
}

// InsertColumn upserts a column, creating the schema and table if necessary.
func (d *Database) InsertColumn(schemaName, tableName string, col Column) {
	s := d.schemaOrCreate(schemaName)

	s.mu.RLock()
	t, ok := s.tables[tableName]
	s.mu.RUnlock()
	if !ok {
		s.mu.Lock()
		t, ok = s.tables[tableName]
		if !ok {
			t = NewTable(tableName)
			s.tables[tableName] = t
			s.order = append(s.order, tableName)
		}
		s.mu.Unlock()
	}

	t.InsertColumn(col)
}
