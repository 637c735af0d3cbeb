package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledgerbook/backend/internal/domain/shared"
)

// Optional distinguishes an absent JSON field from an explicit null.
// Set is true when the key was present; Null is true when its value was null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr returns the value when present and non-null
func (o Optional[T]) Ptr() *T {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Cleared reports an explicit null
func (o Optional[T]) Cleared() bool {
	return o.Set && o.Null
}

// textPatch maps an optional text field onto the domain convention where an
// empty string clears the column and nil leaves it untouched.
func textPatch(o Optional[string]) *string {
	if !o.Set {
		return nil
	}
	if o.Null {
		empty := ""
		return &empty
	}
	v := o.Value
	return &v
}

// datePatch parses an optional date; cleared reports an explicit null
func datePatch(field string, o Optional[string]) (date *time.Time, cleared bool, err error) {
	if !o.Set {
		return nil, false, nil
	}
	if o.Null || o.Value == "" {
		return nil, true, nil
	}
	t, err := parseDateField(field, o.Value)
	if err != nil {
		return nil, false, err
	}
	return &t, false, nil
}

func parseDateField(field, value string) (time.Time, error) {
	t, err := shared.ParseDate(value)
	if err != nil {
		return time.Time{}, shared.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD form", field))
	}
	return t, nil
}

func parseOptionalDateField(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDateField(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
