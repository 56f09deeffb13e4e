package bingo

import (
	"encoding/json"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

// ImportData is a validated document, ready to be persisted.
type ImportData struct {
	Board     *entity.Board
	UserLists *entity.ResolutionLists
}

// ImportResult reports whether a document may be applied. Err is an *ImportError
// carrying the user facing message when Valid is false.
type ImportResult struct {
	Valid bool
	Err   error
	Data  *ImportData
}

// Export bundles a board and the lists it came from into a backup document.
// Lists are always written, empty when the user has none stored.
func Export(board *entity.Board, lists *entity.ResolutionLists) entity.ExportDocument {
	userLists := entity.NewResolutionLists(nil, nil)
	if lists != nil {
		userLists = entity.NewResolutionLists(slices.Clone(lists.Standard), slices.Clone(lists.Boss))
	}

	return entity.ExportDocument{
		Version:   entity.ExportVersion,
		CreatedAt: board.CreatedAt,
		Squares:   board.Squares,
		UserLists: userLists,
	}
}

// ValidateImport checks an untrusted document before it may replace any state.
//
// Both the current format (integer version, userLists) and the legacy one
// (string version tag, no lists) are accepted; a present but null version is
// tolerated. createdAt must be a string holding either an RFC 3339 timestamp or
// a date in 2006-01-02 form, which is read as midnight UTC. Boards with zero or several boss
// squares are repaired: the first flagged square stays boss, or the center when
// none is flagged. Malformed userLists are dropped without failing the import.
func ValidateImport(raw []byte) ImportResult {
	data, err := parseImport(raw)
	if err != nil {
		return ImportResult{Err: err}
	}

	return ImportResult{Valid: true, Data: data}
}

func parseImport(raw []byte) (*ImportData, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, importf(ErrMalformedDocument, "failed to parse JSON: %v", err)
	}

	document, ok := parsed.(map[string]any)
	if !ok {
		return nil, importf(ErrMalformedDocument, "invalid JSON format: expected an object")
	}

	version, ok := document["version"]
	if !ok {
		return nil, importf(ErrMalformedDocument, "missing 'version' field")
	}

	if err := checkVersion(version); err != nil {
		return nil, err
	}

	createdAt, err := parseCreatedAt(document["createdAt"])
	if err != nil {
		return nil, err
	}

	squares, err := parseSquares(document["squares"])
	if err != nil {
		return nil, err
	}

	board := &entity.Board{
		Squares:   squares,
		CreatedAt: createdAt,
	}

	return &ImportData{
		Board:     board.RepairBoss(),
		UserLists: parseUserLists(document["userLists"]),
	}, nil
}

func checkVersion(value any) error {
	switch version := value.(type) {
	case nil:
		return nil
	case float64:
		if version != math.Trunc(version) {
			return importf(ErrMalformedDocument, "invalid 'version' field: %v is not an integer", version)
		}
		return nil
	case string:
		// legacy exports carry a version tag instead of a number
		if strings.TrimSpace(version) == "" {
			return importf(ErrMalformedDocument, "invalid 'version' field: empty tag")
		}
		return nil
	default:
		return importf(ErrMalformedDocument, "invalid 'version' field: expected a number or a string")
	}
}

var createdAtLayouts = []string{time.RFC3339, time.DateOnly}

func parseCreatedAt(value any) (time.Time, error) {
	raw, ok := value.(string)
	if !ok {
		return time.Time{}, importf(ErrMalformedDocument, "missing or invalid 'createdAt' field")
	}

	for _, layout := range createdAtLayouts {
		if createdAt, err := time.Parse(layout, raw); err == nil {
			return createdAt.UTC(), nil
		}
	}

	return time.Time{}, importf(ErrMalformedDocument, "invalid 'createdAt' field: %q is not a timestamp or a date", raw)
}

func parseSquares(value any) ([entity.BoardSize]entity.Cell, error) {
	var squares [entity.BoardSize]entity.Cell

	items, ok := value.([]any)
	if !ok {
		return squares, importf(ErrInvalidSquareCount, "missing or invalid 'squares' field: expected an array")
	}

	if len(items) != entity.BoardSize {
		return squares, importf(ErrInvalidSquareCount,
			"invalid squares array: expected %d items, got %d", entity.BoardSize, len(items))
	}

	for i, item := range items {
		square, ok := item.(map[string]any)
		if !ok {
			return squares, importf(ErrInvalidCellShape, "invalid square at index %d: expected an object", i)
		}

		text, ok := square["text"].(string)
		if !ok {
			return squares, importf(ErrInvalidCellShape, "invalid square at index %d: missing or invalid 'text' field", i)
		}

		isBoss, ok := square["isBoss"].(bool)
		if !ok {
			return squares, importf(ErrInvalidCellShape, "invalid square at index %d: missing or invalid 'isBoss' field", i)
		}

		marked, ok := square["marked"].(bool)
		if !ok {
			return squares, importf(ErrInvalidCellShape, "invalid square at index %d: missing or invalid 'marked' field", i)
		}

		squares[i] = entity.Cell{Text: text, IsBoss: isBoss, Marked: marked}
	}

	return squares, nil
}

func parseUserLists(value any) *entity.ResolutionLists {
	lists, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	standard, ok := toStrings(lists["standard"])
	if !ok {
		return nil
	}

	boss, ok := toStrings(lists["boss"])
	if !ok {
		return nil
	}

	return entity.NewResolutionLists(standard, boss)
}

func toStrings(value any) ([]string, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		text, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, text)
	}

	return out, true
}
