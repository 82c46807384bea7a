// Package validators checks domain entities before they reach storage.
//
// A [Validator] inspects an arbitrary value and reports the first rule it
// breaks as a sentinel error. Callers may restrict the check to specific
// named fields; with no fields given, the full default rule set for the
// value's type applies. Repositories run their validator inside SaveItems
// so invalid entities never land in the local database.
package validators

import "context"

// Validator validates arbitrary input values, optionally scoped to the
// given field names.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
