// Package ulid provides prefixed, monotonic ULIDs built on
// github.com/oklog/ulid/v2. codelens uses them for review request IDs and
// browser session IDs.
package ulid

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// PrefixRequest tags IDs of individual review requests
	PrefixRequest = "req"

	// PrefixSession tags IDs of browser sessions
	PrefixSession = "ses"

	// PrefixSeparator is used to separate the prefix from the ULID
	PrefixSeparator = "-"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// ULID wraps ulid.ULID with an optional human-readable prefix.
type ULID struct {
	ulid.ULID
	prefix string
}

// Generate creates a new ULID with the current timestamp.
func Generate() ULID {
	return NewWithTime(time.Now())
}

// GenerateWithPrefix creates a new ULID with the current timestamp and a prefix.
func GenerateWithPrefix(prefix string) ULID {
	id := Generate()
	id.prefix = prefix
	return id
}

// NewWithTime creates a new ULID with a specific timestamp.
func NewWithTime(t time.Time) ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()
	return ULID{ULID: ulid.MustNew(ulid.Timestamp(t), entropy)}
}

// Parse accepts both plain ("01AN4Z07BY79KA1307SR9X4MV3") and prefixed
// ("req-01AN4Z07BY79KA1307SR9X4MV3") forms.
func Parse(id string) (ULID, error) {
	prefix, raw, found := strings.Cut(id, PrefixSeparator)
	if !found {
		raw, prefix = prefix, ""
	}

	parsed, err := ulid.Parse(raw)
	if err != nil {
		return ULID{}, err
	}
	return ULID{ULID: parsed, prefix: prefix}, nil
}

// Validate reports whether id parses as a plain or prefixed ULID.
func Validate(id string) bool {
	_, err := Parse(id)
	return err == nil
}

// Prefix returns the prefix of the ULID, if any
func (u ULID) Prefix() string {
	return u.prefix
}

// String returns the prefixed form when a prefix is set.
func (u ULID) String() string {
	if u.prefix == "" {
		return u.ULID.String()
	}
	return u.prefix + PrefixSeparator + u.ULID.String()
}

// Time returns the timestamp encoded in the ULID.
func (u ULID) Time() time.Time {
	return ulid.Time(u.ULID.Time())
}

// RequestID generates a new ULID for a review request
func RequestID() string {
	return GenerateWithPrefix(PrefixRequest).String()
}

// SessionID generates a new ULID for a browser session
func SessionID() string {
	return GenerateWithPrefix(PrefixSession).String()
}
