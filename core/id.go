package core

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new ULID with the given prefix, e.g. NewID("trg") returns
// "trg_01G0EZ1XTM37C5X11SQTDNCTM1". ULIDs sort lexicographically by creation
// time, which keeps listings in insertion order without an extra column.
func NewID(prefix string) string {
	cleanPrefix := strings.TrimSpace(strings.ToLower(prefix))
	if cleanPrefix == "" {
		panic("id prefix cannot be empty")
	}
	return fmt.Sprintf("%s_%s", cleanPrefix, ulid.Make().String())
}
