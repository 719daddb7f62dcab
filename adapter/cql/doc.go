// Package cql and its subpackages isolate the casstcl engine from the
// concrete CQL driver.
//
// The engine only ever sees the Session, Query, Iter and Prepared
// interfaces defined here. Subpackage v1 adapts github.com/gocql/gocql;
// further driver versions get their own subpackage with the same shape.
//
// The interfaces deliberately expose one result page at a time: a query
// configured with PageState uses manual paging, so the engine's
// paginated executor controls exactly when the next page is requested
// and can stop between pages.
package cql
