package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a prefixed ULID such as "ten_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV". The prefix
// names the entity so IDs from different tables are never confused in logs.
type ID string

// Kind is the entity prefix of an ID.
type Kind string

const (
	KindTenant  Kind = "ten"
	KindInvite  Kind = "inv"
	KindRequest Kind = "req"
)

// Zero represents the zero value ID, don't use this unless its a placeholder.
const Zero ID = ""

const sep = "_"

// ErrInvalid reports a malformed ID string.
var ErrInvalid = errors.New("idx: invalid id")

var (
	globalOnce sync.Once
	global     *generator
)

// generator hands out ULIDs from a shared monotonic source.
type generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (g *generator) newAt(t time.Time) ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), g.entropy)
}

func initGlobal() {
	global = &generator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// New returns a new lexicographically sortable ID of kind k stamped with the
// current UTC time.
func New(k Kind) ID {
	return NewAt(k, time.Now().UTC())
}

// NewAt generates an ID at the provided time, useful for tests.
func NewAt(k Kind, t time.Time) ID {
	globalOnce.Do(initGlobal)
	return ID(string(k) + sep + global.newAt(t.UTC()).String())
}

// Parse validates the prefix and the ULID body.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)

	kind, body, ok := strings.Cut(s, sep)
	if !ok || !knownKind(Kind(kind)) {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(body); err != nil {
		return Zero, ErrInvalid
	}

	return ID(s), nil
}

// MustParse parses or panics. Useful for hard-coded IDs in tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func knownKind(k Kind) bool {
	switch k {
	case KindTenant, KindInvite, KindRequest:
		return true
	}
	return false
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Kind returns the prefix, or "" for malformed IDs.
func (id ID) Kind() Kind {
	kind, _, ok := strings.Cut(string(id), sep)
	if !ok {
		return ""
	}
	return Kind(kind)
}

// Time extracts the embedded UTC timestamp. Invalid IDs yield the zero time.
func (id ID) Time() time.Time {
	_, body, ok := strings.Cut(string(id), sep)
	if !ok {
		return time.Time{}
	}

	u, err := ulid.ParseStrict(body)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
