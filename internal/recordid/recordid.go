// Package recordid generates and validates record identifiers.
//
// Ids look like "blog_1718035200123_9f3c21ab": an entity prefix, the
// creation time in unix milliseconds, and a random suffix. The time prefix
// keeps ids roughly sortable; the suffix makes collisions negligible.
package recordid

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 8

var idPattern = regexp.MustCompile(`^[a-z]+_[0-9]+_[0-9a-f]{8}$`)

// New generates an id for the given entity prefix, e.g. "blog" or "reading".
func New(prefix string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:suffixLen]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

// IsValid checks whether s has the generated id shape.
func IsValid(s string) bool {
	return idPattern.MatchString(s)
}

// HasPrefix checks whether the id belongs to the given entity prefix.
func HasPrefix(id, prefix string) bool {
	return IsValid(id) && strings.HasPrefix(id, prefix+"_")
}

// Validate returns an error if s is not a well-formed record id.
func Validate(s string) error {
	if !IsValid(s) {
		return fmt.Errorf("invalid record id: %q", s)
	}
	return nil
}
