package schema

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator produces opaque identifiers, used for session and query
// correlation IDs and for caller-side entity keys.
type IDGenerator interface {
	Generate() string
	Type() string
}

// UUIDGenerator generates random UUIDv4 strings.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string { return uuid.NewString() }
func (UUIDGenerator) Type() string     { return "uuid" }

// ULIDGenerator generates monotonic, lexically sortable ULIDs.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

func (g *ULIDGenerator) Type() string { return "ulid" }

var generators = struct {
	mu    sync.RWMutex
	byTyp map[string]IDGenerator
}{byTyp: map[string]IDGenerator{
	"uuid": UUIDGenerator{},
	"ulid": NewULIDGenerator(),
}}

// RegisterGenerator installs or replaces a named generator.
func RegisterGenerator(g IDGenerator) {
	generators.mu.Lock()
	defer generators.mu.Unlock()
	generators.byTyp[g.Type()] = g
}

// GenerateID produces an identifier from the named generator.
func GenerateID(typ string) (string, error) {
	generators.mu.RLock()
	g, ok := generators.byTyp[typ]
	generators.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("schema: unknown id generator %q", typ)
	}
	return g.Generate(), nil
}

// NewUUID is shorthand for the uuid generator.
func NewUUID() string { return UUIDGenerator{}.Generate() }

// NewULID is shorthand for the shared monotonic ulid generator.
func NewULID() string {
	id, _ := GenerateID("ulid")
	return id
}
