package model

import (
	"encoding/json"
	"strconv"
)

// ParseID is the single identifier-syntax predicate for the store:
// a valid identifier is a positive base-10 uint64. It says nothing
// about existence.
func ParseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// OptionalID is a request field that distinguishes three states of an
// identifier in a JSON payload: absent, explicitly null, and set.
// Ticket updates use it for userId, where null means "unassign" and
// absence means "leave the assignee untouched".
type OptionalID struct {
	Present bool
	Null    bool
	Value   uint64
}

// UnmarshalJSON records that the field appeared in the payload and
// whether it was null. It is only invoked for present fields, so the
// zero OptionalID means "absent".
func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}
