package bingo

import (
	"strings"

	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

const (
	MinStandard = entity.StandardSquares
	MinBoss     = 1
)

// ValidationResult is the outcome of ValidateLists. The counts are of unique
// entries; Err is a *ValidationError when Valid is false.
type ValidationResult struct {
	Valid bool
	Err   error

	StandardCount int
	BossCount     int
}

// Message returns the user facing error text, empty when the lists are valid.
func (that ValidationResult) Message() string {
	if that.Err == nil {
		return ""
	}
	return that.Err.Error()
}

// ParseResolutionList splits newline separated input into trimmed, non-blank entries.
func ParseResolutionList(text string) []string {
	lines := strings.Split(text, "\n")

	items := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			items = append(items, line)
		}
	}

	return items
}

// UniqueItems trims every entry and keeps the first occurrence of each non-blank value.
func UniqueItems(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if _, ok := seen[item]; ok {
			continue
		}

		seen[item] = struct{}{}
		unique = append(unique, item)
	}

	return unique
}

// ValidateLists checks that the lists hold enough unique entries to fill a card.
func ValidateLists(standard, boss []string) ValidationResult {
	uniqueStandard := UniqueItems(standard)
	uniqueBoss := UniqueItems(boss)

	if len(uniqueBoss) < MinBoss {
		return ValidationResult{
			Err:           insufficientf(ErrInsufficientBoss, "need at least %d boss resolution", MinBoss),
			StandardCount: len(uniqueStandard),
		}
	}

	if len(uniqueStandard) < MinStandard {
		return ValidationResult{
			Err: insufficientf(ErrInsufficientStandard,
				"need at least %d unique standard resolutions, you have %d", MinStandard, len(uniqueStandard)),
			StandardCount: len(uniqueStandard),
			BossCount:     len(uniqueBoss),
		}
	}

	return ValidationResult{
		Valid:         true,
		StandardCount: len(uniqueStandard),
		BossCount:     len(uniqueBoss),
	}
}
