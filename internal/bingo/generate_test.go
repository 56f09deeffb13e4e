package bingo

import (
	"testing"

	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	t.Run("Places the boss in the center and the standard resolutions around it", func(t *testing.T) {
		// Given: R1..R24 and a single boss
		standard := numbered("R", 24)
		generator := NewGenerator(seeded(7), fixedClock())

		// When: generating a card
		board, err := generator.Generate(standard, []string{"Run a marathon"})
		require.NoError(t, err)

		// Then: the center is the boss and the rest is a permutation of R1..R24
		assert.Equal(t, entity.Cell{Text: "Run a marathon", IsBoss: true, Marked: false}, board.Squares[entity.CenterIndex])

		others := make([]string, 0, entity.StandardSquares)
		for i, cell := range board.Squares {
			if i == entity.CenterIndex {
				continue
			}
			assert.False(t, cell.IsBoss)
			assert.False(t, cell.Marked)
			others = append(others, cell.Text)
		}
		assert.ElementsMatch(t, standard, others)
		assert.Equal(t, testCreatedAt, board.CreatedAt)
	})

	t.Run("Draws unique texts from both lists with exactly one boss", func(t *testing.T) {
		// Given: larger pools than a card needs
		standard := numbered("S", 40)
		boss := []string{"B1", "B2", "B3"}
		union := make(map[string]bool)
		for _, item := range append(append([]string{}, standard...), boss...) {
			union[item] = true
		}

		for seed := int64(0); seed < 20; seed++ {
			// When: generating with different seeds
			board, err := NewGenerator(seeded(seed)).Generate(standard, boss)
			require.NoError(t, err)

			// Then: every invariant of a fresh card holds
			seen := make(map[string]bool)
			for _, cell := range board.Squares {
				assert.True(t, union[cell.Text], "unexpected text %q", cell.Text)
				assert.False(t, seen[cell.Text], "repeated text %q", cell.Text)
				assert.False(t, cell.Marked)
				seen[cell.Text] = true
			}
			assert.Equal(t, []int{entity.CenterIndex}, board.BossIndices())
			assert.Contains(t, boss, board.Squares[entity.CenterIndex].Text)
		}
	})

	t.Run("Produces different layouts across calls", func(t *testing.T) {
		// Given: the default randomness
		generator := NewGenerator()
		standard := numbered("S", 40)

		// When: generating two cards from the same lists
		first, err := generator.Generate(standard, []string{"Boss"})
		require.NoError(t, err)
		second, err := generator.Generate(standard, []string{"Boss"})
		require.NoError(t, err)

		// Then: the layouts differ
		assert.NotEqual(t, first.Squares, second.Squares)
	})

	t.Run("Is reproducible with the same seed", func(t *testing.T) {
		standard := numbered("S", 40)

		first, err := NewGenerator(seeded(42), fixedClock()).Generate(standard, []string{"A", "B"})
		require.NoError(t, err)
		second, err := NewGenerator(seeded(42), fixedClock()).Generate(standard, []string{"A", "B"})
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Propagates the validation error", func(t *testing.T) {
		// Given: too few standard resolutions
		// When: generating a card
		board, err := NewGenerator().Generate(numbered("R", 23), []string{"Boss"})

		// Then: no card is produced
		require.ErrorIs(t, err, ErrInsufficientStandard)
		assert.Contains(t, err.Error(), "23")
		assert.Nil(t, board)
	})

	t.Run("Fails when the boss also fills a standard slot", func(t *testing.T) {
		// Given: exactly 24 standard resolutions, one of them also the only boss
		standard := numbered("R", 24)

		// When: generating a card
		board, err := NewGenerator().Generate(standard, []string{"R5"})

		// Then: only 23 remain after excluding the boss
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.ErrorIs(t, err, ErrInsufficientStandardAfterExclusion)
		assert.Contains(t, err.Error(), "23")
		assert.Nil(t, board)
	})

	t.Run("Never repeats the boss text in a standard square", func(t *testing.T) {
		// Given: the boss appears in the standard pool too
		standard := append(numbered("R", 24), "Boss")

		// When: generating a card
		board, err := NewGenerator(seeded(3)).Generate(standard, []string{"Boss"})
		require.NoError(t, err)

		// Then: the boss text only appears once
		count := 0
		for _, cell := range board.Squares {
			if cell.Text == "Boss" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

type zeroSource struct{}

func (zeroSource) Intn(int) int { return 0 }

func TestShuffle(t *testing.T) {
	// Given: a source that always picks the first index
	items := []string{"a", "b", "c", "d"}

	// When: shuffling
	shuffle(zeroSource{}, items)

	// Then: each step swaps position i with position 0
	assert.Equal(t, []string{"b", "c", "d", "a"}, items)
}
