package bingo

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

// Source is the randomness a Generator draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the per-call randomness factory.
func WithSource(newSource func() Source) Option {
	return func(that *Generator) {
		that.newSource = newSource
	}
}

// WithClock sets the clock that stamps createdAt on new cards.
func WithClock(now func() time.Time) Option {
	return func(that *Generator) {
		that.now = now
	}
}

// Generator builds new cards from resolution lists.
type Generator struct {
	newSource func() Source
	now       func() time.Time
}

// NewGenerator returns a Generator seeded from crypto/rand on every call, stamping cards in UTC.
func NewGenerator(opts ...Option) *Generator {
	generator := &Generator{
		newSource: newRandSource,
		now:       utcNow,
	}

	for _, opt := range opts {
		opt(generator)
	}

	return generator
}

// Generate lays the lists out on a fresh card: a random boss in the center and
// 24 shuffled standard resolutions around it.
func (that *Generator) Generate(standard, boss []string) (*entity.Board, error) {
	uniqueStandard := UniqueItems(standard)
	uniqueBoss := UniqueItems(boss)

	if result := ValidateLists(uniqueStandard, uniqueBoss); !result.Valid {
		return nil, result.Err
	}

	rng := that.newSource()

	bossText := uniqueBoss[rng.Intn(len(uniqueBoss))]

	pool := make([]string, 0, len(uniqueStandard))
	for _, item := range uniqueStandard {
		if item != bossText {
			pool = append(pool, item)
		}
	}

	if len(pool) < entity.StandardSquares {
		return nil, insufficientf(ErrInsufficientStandardAfterExclusion,
			"need at least %d standard resolutions that differ from the boss resolution, you have %d",
			entity.StandardSquares, len(pool))
	}

	shuffle(rng, pool)

	board := &entity.Board{CreatedAt: that.now()}

	next := 0
	for i := range board.Squares {
		if i == entity.CenterIndex {
			board.Squares[i] = entity.Cell{Text: bossText, IsBoss: true}
			continue
		}

		board.Squares[i] = entity.Cell{Text: pool[next]}
		next++
	}

	return board, nil
}

// shuffle is an in-place Fisher-Yates shuffle.
func shuffle(rng Source, items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func newRandSource() Source {
	var seed [8]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		return rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // not security sensitive
	}

	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(seed[:])))) //nolint: gosec // not security sensitive
}

// utcNow matches the millisecond precision of the ISO timestamps browsers produce.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
