// Package models defines the vehicle registry data types shared by the
// wizard, the REST client and the CLI.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is a backend identifier. The API emits numeric ids; forms carry them
// as strings, so both JSON forms decode into the same string value.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}
