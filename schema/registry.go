package schema

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gahr/casstcl/adapter/cql"
	"github.com/gahr/casstcl/internal/logging"
	"github.com/gahr/casstcl/internal/metrics"
	"github.com/gahr/casstcl/types"
)

// MetadataSource is the registry's view of the cluster schema. It is
// satisfied by cql.Session.
type MetadataSource interface {
	// KeyspaceMetadata returns the schema metadata of a keyspace, or
	// nil when the keyspace does not exist.
	KeyspaceMetadata(keyspace string) (*cql.KeyspaceMeta, error)

	// Keyspaces lists the keyspace names in the cluster.
	Keyspaces(ctx context.Context) ([]string, error)
}

// Resolver is a slow-path hook for wire type descriptors the built-in
// translation does not recognize. It is consulted at most once per
// descriptor; the result is cached with the column.
//
// Returning false leaves the column UNKNOWN.
type Resolver func(descriptor string) (types.ColumnType, bool)

// Column describes one column of a table, with its translated type.
type Column struct {
	// Name is the column name.
	Name string

	// Type is the translated wire type, UNKNOWN when the descriptor
	// did not resolve.
	Type types.ColumnType

	// Validator is the raw wire type descriptor.
	Validator string
}

// Registry resolves column names to wire types, caching per-table
// schema lookups.
//
// The first resolution against a table fetches and translates the whole
// table's columns in one round trip; subsequent resolutions are served
// from the cache. Resolution is idempotent: resolving the same column
// twice yields the same type without touching the cluster again.
type Registry struct {
	source   MetadataSource
	resolver Resolver
	logger   types.Logger
	metrics  types.MetricsCollector

	mu        sync.RWMutex
	cache     map[string]types.ColumnType
	populated map[string]bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithResolver sets the slow-path descriptor resolver.
func WithResolver(r Resolver) Option {
	return func(reg *Registry) {
		reg.resolver = r
	}
}

// WithLogger sets the logger.
func WithLogger(l types.Logger) Option {
	return func(reg *Registry) {
		if l != nil {
			reg.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m types.MetricsCollector) Option {
	return func(reg *Registry) {
		if m != nil {
			reg.metrics = m
		}
	}
}

// NewRegistry creates a type registry over the given metadata source.
//
// Parameters:
//   - source: The schema metadata source, usually the cql.Session
//   - opts: Optional resolver, logger and metrics configuration
//
// Returns:
//   - *Registry: The registry, with an empty cache
func NewRegistry(source MetadataSource, opts ...Option) *Registry {
	reg := &Registry{
		source:    source,
		logger:    logging.NewNopLogger(),
		metrics:   metrics.NewNopMetrics(),
		cache:     make(map[string]types.ColumnType),
		populated: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(reg)
	}

	return reg
}

// Resolve returns the wire type of a column.
//
// The table name must be keyspace qualified ("keyspace.table"). A
// column absent from the table's schema resolves to the UNKNOWN type;
// that is a valid result, not an error. Errors are reserved for a
// missing keyspace or table and for metadata fetch failures.
//
// Parameters:
//   - table: Keyspace-qualified table name
//   - column: Column name
//
// Returns:
//   - types.ColumnType: The column's type, UNKNOWN when not in schema
//   - error: Lookup or metadata failure
func (r *Registry) Resolve(table, column string) (types.ColumnType, error) {
	key := table + "/" + column

	r.mu.RLock()
	typ, cached := r.cache[key]
	populated := r.populated[table]
	r.mu.RUnlock()

	if cached {
		r.metrics.IncTypeCacheHit()

		return typ, nil
	}
	if populated {
		// Table already fetched, column simply not in schema.
		r.metrics.IncTypeCacheHit()

		return types.Unknown(""), nil
	}

	r.metrics.IncTypeCacheMiss()
	if err := r.populate(table); err != nil {
		return types.ColumnType{}, err
	}

	r.mu.RLock()
	typ, cached = r.cache[key]
	r.mu.RUnlock()

	if !cached {
		return types.Unknown(""), nil
	}

	return typ, nil
}

// populate fetches a table's schema and caches all its column types.
func (r *Registry) populate(table string) error {
	keyspace, name, err := splitTableName(table)
	if err != nil {
		return err
	}

	meta, err := r.source.KeyspaceMetadata(keyspace)
	if err != nil {
		return err
	}
	if meta == nil {
		return &types.KeyspaceNotFoundError{Keyspace: keyspace}
	}

	tableMeta, ok := meta.Tables[name]
	if !ok || tableMeta == nil {
		return &types.TableNotFoundError{Keyspace: keyspace, Table: name}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, col := range tableMeta.Columns {
		r.cache[table+"/"+col.Name] = r.translate(col.Name, col.Validator)
	}
	r.populated[table] = true

	return nil
}

// translate turns a raw descriptor into a ColumnType, consulting the
// slow-path resolver for descriptors the built-in translation misses.
func (r *Registry) translate(column, validator string) types.ColumnType {
	typ := ParseDescriptor(validator)
	if !typ.IsUnknown() {
		return typ
	}

	if r.resolver != nil {
		if resolved, ok := r.resolver(validator); ok {
			return resolved
		}
	}

	r.logger.Debug("unrecognized column type descriptor",
		"column", column, "validator", validator)

	return typ
}

// Invalidate discards the cached schema of one table. The next
// resolution against the table fetches fresh metadata.
func (r *Registry) Invalidate(table string) {
	prefix := table + "/"

	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.cache {
		if strings.HasPrefix(key, prefix) {
			delete(r.cache, key)
		}
	}
	delete(r.populated, table)
}

// InvalidateAll discards the entire cache.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]types.ColumnType)
	r.populated = make(map[string]bool)
}

// Keyspaces lists the keyspace names in the cluster, sorted.
func (r *Registry) Keyspaces(ctx context.Context) ([]string, error) {
	names, err := r.source.Keyspaces(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	return names, nil
}

// Tables lists the table names of a keyspace, sorted.
func (r *Registry) Tables(keyspace string) ([]string, error) {
	meta, err := r.source.KeyspaceMetadata(keyspace)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, &types.KeyspaceNotFoundError{Keyspace: keyspace}
	}

	names := make([]string, 0, len(meta.Tables))
	for name := range meta.Tables {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// Columns lists the columns of a table in schema order, with their
// translated types.
//
// Parameters:
//   - table: Keyspace-qualified table name
//
// Returns:
//   - []Column: The table's columns
//   - error: Lookup or metadata failure
func (r *Registry) Columns(table string) ([]Column, error) {
	keyspace, name, err := splitTableName(table)
	if err != nil {
		return nil, err
	}

	meta, err := r.source.KeyspaceMetadata(keyspace)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, &types.KeyspaceNotFoundError{Keyspace: keyspace}
	}

	tableMeta, ok := meta.Tables[name]
	if !ok || tableMeta == nil {
		return nil, &types.TableNotFoundError{Keyspace: keyspace, Table: name}
	}

	cols := make([]Column, 0, len(tableMeta.Columns))
	for _, col := range tableMeta.Columns {
		cols = append(cols, Column{
			Name:      col.Name,
			Type:      r.translate(col.Name, col.Validator),
			Validator: col.Validator,
		})
	}

	return cols, nil
}

// splitTableName splits a keyspace-qualified table name.
func splitTableName(table string) (keyspace, name string, err error) {
	keyspace, name, ok := strings.Cut(table, ".")
	if !ok || keyspace == "" || name == "" {
		return "", "", fmt.Errorf(
			"casstcl: table name '%s' must be qualified as keyspace.table", table)
	}

	return keyspace, name, nil
}
