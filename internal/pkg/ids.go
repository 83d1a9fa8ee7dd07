package pkg

import (
	crand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/exp/rand"
)

// ids draws game ids. The package-level x/exp/rand source starts from a fixed
// seed, so game ids get their own source seeded from crypto/rand.
var ids = newGenerator()

type generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func newGenerator() *generator {
	var seed [8]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic(fmt.Errorf("failed to seed id generator: %w", err))
	}

	return &generator{rnd: rand.New(rand.NewSource(binary.LittleEndian.Uint64(seed[:])))}
}

func (that *generator) uint64() uint64 {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Uint64()
}

// GenerateGameID returns a short random game identifier.
func GenerateGameID() string {
	return formatGameID(ids.uint64())
}

func formatGameID(n uint64) string {
	return fmt.Sprintf("%012x", n&0xffffffffffff)
}

// GenerateNewSessionID returns a random player session identifier. Session
// ids double as credentials, so they come straight from crypto/rand.
func GenerateNewSessionID() string {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic(fmt.Errorf("failed to generate session id: %w", err))
	}

	return hex.EncodeToString(buf[:])
}
