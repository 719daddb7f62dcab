// Package marshal converts between dynamic values and driver-native
// values.
//
// Bind is the outbound direction: a types.Value converted against a
// types.ColumnType into whatever the CQL driver marshals natively.
// ToValue is the inbound direction: a scanned result value rendered
// back into its dynamic form. Neither direction coerces implicitly;
// every conversion is explicit against a column type, and failures
// identify the column, the target type and the offending value.
package marshal
