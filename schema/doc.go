// Package schema resolves column names to wire types.
//
// The Registry caches per-table schema metadata fetched through a
// MetadataSource (normally the cql.Session) and translates raw wire
// type descriptors into types.ColumnType values. Both descriptor
// spellings are understood: CQL type names such as "map<text, bigint>"
// and Cassandra marshal class names such as
// "org.apache.cassandra.db.marshal.LongType".
//
// Unrecognized descriptors resolve to the UNKNOWN type rather than an
// error; an optional Resolver hook gets one chance per descriptor to
// translate what the built-in table cannot.
package schema
