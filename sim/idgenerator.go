package sim

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

var (
	idGeneratorMutex sync.Mutex
	idGenerator      IDGenerator
)

// IDGenerator issues the unique IDs of events.
type IDGenerator interface {
	Generate() string
}

// UseSequentialIDGenerator makes events receive sequential IDs. Sequential IDs
// sort lexicographically in the order they are issued, so events created
// earlier fire first among events at the same time. It panics if IDs have
// already been issued.
func UseSequentialIDGenerator() {
	setIDGenerator(&sequentialIDGenerator{})
}

// UseParallelIDGenerator makes events receive xid IDs, which can be issued
// from multiple goroutines without coordination. The firing order of
// same-time events then no longer follows creation order. It panics if IDs
// have already been issued.
func UseParallelIDGenerator() {
	setIDGenerator(parallelIDGenerator{})
}

func setIDGenerator(g IDGenerator) {
	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	if idGenerator != nil {
		log.Panic("cannot change id generator type after using it")
	}

	idGenerator = g
}

// GetIDGenerator returns the ID generator in use, falling back to the
// sequential one.
func GetIDGenerator() IDGenerator {
	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	if idGenerator == nil {
		idGenerator = &sequentialIDGenerator{}
	}

	return idGenerator
}

type sequentialIDGenerator struct {
	lastID atomic.Uint64
}

func (g *sequentialIDGenerator) Generate() string {
	return fmt.Sprintf("%020d", g.lastID.Add(1))
}

type parallelIDGenerator struct{}

func (parallelIDGenerator) Generate() string {
	return xid.New().String()
}
