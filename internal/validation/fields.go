// Package validation checks request input before it reaches the store.
package validation

import (
	"fmt"
	"strings"
)

// Required verifies that every named field has a non-empty value and returns
// an error naming the missing ones. fields preserves declaration order so the
// message is stable.
func Required(fields []Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
}

// Field is a named request value to validate.
type Field struct {
	Name  string
	Value string
}
