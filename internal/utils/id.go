package utils

import "github.com/google/uuid"

// NewID returns an opaque identifier with a readable entity prefix,
// e.g. "prop-3f2c...". Prefixes keep log lines and FK errors easy to
// read without encoding any meaning the code relies on.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
