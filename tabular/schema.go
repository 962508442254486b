/*
schema.go - Table schema registration and lookup

PURPOSE:
  Provides a registry for domain packages to declare which columns each
  input table requires. The loader consults the registry to reject
  malformed inputs; the API exposes it so callers can ask what a table
  must contain before producing one.

HOW IT WORKS:
  1. Domain packages define their Schema values
  2. Domain packages register them on init()
  3. Loader and API use the registry for validation and discovery

WHY A REGISTRY:
  - The table layer stays domain-agnostic
  - Schemas live next to the domain that owns them
  - list_required_columns is a lookup, not a hardcoded switch

SEE ALSO:
  - voucher/types.go: The three input-table schemas
  - voucher/loader.go: Uses MissingFrom during load
*/
package tabular

import (
	"fmt"
	"sort"
	"sync"
)

// Schema declares the column contract of one logical table.
type Schema struct {
	Table    string
	Required []string
	Optional []string
}

// Columns returns required then optional columns.
func (s Schema) Columns() []string {
	out := make([]string, 0, len(s.Required)+len(s.Optional))
	out = append(out, s.Required...)
	out = append(out, s.Optional...)
	return out
}

// MissingFrom returns every required column the table lacks, in the order
// the schema declares them.
func (s Schema) MissingFrom(t *Table) []string {
	var missing []string
	for _, c := range s.Required {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// =============================================================================
// SCHEMA REGISTRY
// =============================================================================

var (
	schemaRegistry = make(map[string]Schema)
	registryMu     sync.RWMutex
)

// RegisterSchema adds a schema to the global registry.
// Call this from domain package init() functions.
func RegisterSchema(s Schema) {
	registryMu.Lock()
	defer registryMu.Unlock()
	schemaRegistry[NormalizeColumn(s.Table)] = s
}

// LookupSchema finds a registered schema by table name.
// Lookup is canonical, so "férias" finds the FERIAS schema.
func LookupSchema(table string) (Schema, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := schemaRegistry[NormalizeColumn(table)]
	return s, ok
}

// MustLookupSchema finds a registered schema or panics.
// Use in tests or when wiring known tables.
func MustLookupSchema(table string) Schema {
	s, ok := LookupSchema(table)
	if !ok {
		panic(fmt.Sprintf("schema not registered: %s", table))
	}
	return s
}

// ListSchemas returns all registered schemas sorted by table name.
func ListSchemas() []Schema {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Schema, 0, len(schemaRegistry))
	for _, s := range schemaRegistry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Table < out[j].Table })
	return out
}
