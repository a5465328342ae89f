package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound marks lookups that resolved to nothing. Mutations on missing
// ids are silent no-ops; this is only returned where the caller asked for a
// specific record.
var ErrNotFound = errors.New("not found")

// ErrEmptyCart rejects checkout on a cart with no items.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationErrors maps field name to a human-readable problem. Checkout
// validation collects every failing field so the form can show them all at
// once instead of stopping at the first.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationErrors unwraps err into ValidationErrors if possible.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
