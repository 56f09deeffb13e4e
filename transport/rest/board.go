package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/bingo"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
	"github.com/rocketscienceinc/resobingo-backend/internal/usecase"
)

const maxImportSize = 1 << 20

type boardManager interface {
	GetBoard(ctx context.Context, userID string) (*entity.Board, error)
	PutBoard(ctx context.Context, userID string, squares [entity.BoardSize]entity.Cell) (*entity.Board, error)
	GetLists(ctx context.Context, userID string) (*entity.ResolutionLists, error)
	SaveLists(ctx context.Context, userID string, lists *entity.ResolutionLists) (*entity.ResolutionLists, error)
	NewBoard(ctx context.Context, userID string) (*entity.Board, error)
	GenerateFromLists(ctx context.Context, userID string, lists *entity.ResolutionLists) (*entity.Board, error)
	ToggleSquare(ctx context.Context, userID string, index int) (*usecase.MutationResult, error)
	EditSquare(ctx context.Context, userID string, index int, text string, isBoss *bool) (*usecase.MutationResult, error)
	ResetProgress(ctx context.Context, userID string) (*usecase.MutationResult, error)
	Export(ctx context.Context, userID string) (*entity.ExportDocument, error)
	Import(ctx context.Context, userID string, raw []byte) (*entity.Board, error)
	ClearData(ctx context.Context, userID string) error
}

type boardResponse struct {
	Board          *entity.Board `json:"board"`
	HasBingo       bool          `json:"hasBingo"`
	CompletedLines [][5]int      `json:"completedLines"`
}

type putBoardRequest struct {
	Squares []entity.Cell `json:"squares"`
}

type listsRequest struct {
	Standard []string `json:"standard"`
	Boss     []string `json:"boss"`
}

type editSquareRequest struct {
	Text   string `json:"text"`
	IsBoss *bool  `json:"isBoss"`
}

type BoardHandler struct {
	logger  *slog.Logger
	manager boardManager
	now     func() time.Time
}

func NewBoardHandler(logger *slog.Logger, manager boardManager) *BoardHandler {
	return &BoardHandler{
		logger:  logger.With("component", "board-handler"),
		manager: manager,
		now:     time.Now,
	}
}

func newBoardResponse(board *entity.Board) boardResponse {
	if board == nil {
		return boardResponse{CompletedLines: [][5]int{}}
	}

	lines := bingo.CompletedLines(board.Squares)
	if lines == nil {
		lines = [][5]int{}
	}

	return boardResponse{
		Board:          board,
		HasBingo:       len(lines) > 0,
		CompletedLines: lines,
	}
}

func (that *BoardHandler) GetBoard(c echo.Context) error {
	log := that.logger.With("method", "GetBoard")

	board, err := that.manager.GetBoard(c.Request().Context(), currentUser(c).ID)
	if errors.Is(err, apperror.ErrBoardNotFound) {
		return c.JSON(http.StatusOK, newBoardResponse(nil))
	}
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, newBoardResponse(board))
}

func (that *BoardHandler) PutBoard(c echo.Context) error {
	log := that.logger.With("method", "PutBoard")

	var request putBoardRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid board data"})
	}

	if len(request.Squares) != entity.BoardSize {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("Invalid board data: expected %d squares, got %d", entity.BoardSize, len(request.Squares)),
		})
	}

	var squares [entity.BoardSize]entity.Cell
	copy(squares[:], request.Squares)

	board, err := that.manager.PutBoard(c.Request().Context(), currentUser(c).ID, squares)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, newBoardResponse(board))
}

func (that *BoardHandler) GetLists(c echo.Context) error {
	log := that.logger.With("method", "GetLists")

	lists, err := that.manager.GetLists(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, lists)
}

func (that *BoardHandler) SaveLists(c echo.Context) error {
	log := that.logger.With("method", "SaveLists")

	var request listsRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid lists data"})
	}

	lists, err := that.manager.SaveLists(c.Request().Context(), currentUser(c).ID,
		entity.NewResolutionLists(request.Standard, request.Boss))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, lists)
}

// NewBoard builds a card from the stored lists, or from the lists in the body
// after saving them.
func (that *BoardHandler) NewBoard(c echo.Context) error {
	log := that.logger.With("method", "NewBoard")
	ctx := c.Request().Context()
	userID := currentUser(c).ID

	var request listsRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&request); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid lists data"})
		}
	}

	var (
		board *entity.Board
		err   error
	)
	if len(request.Standard) > 0 || len(request.Boss) > 0 {
		board, err = that.manager.GenerateFromLists(ctx, userID, entity.NewResolutionLists(request.Standard, request.Boss))
	} else {
		board, err = that.manager.NewBoard(ctx, userID)
	}
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, newBoardResponse(board))
}

func (that *BoardHandler) ToggleSquare(c echo.Context) error {
	log := that.logger.With("method", "ToggleSquare")

	index, err := squareIndex(c)
	if err != nil {
		return respondError(c, log, err)
	}

	result, err := that.manager.ToggleSquare(c.Request().Context(), currentUser(c).ID, index)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (that *BoardHandler) EditSquare(c echo.Context) error {
	log := that.logger.With("method", "EditSquare")

	index, err := squareIndex(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var request editSquareRequest
	if err = c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid square data"})
	}

	result, err := that.manager.EditSquare(c.Request().Context(), currentUser(c).ID, index, request.Text, request.IsBoss)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (that *BoardHandler) ResetProgress(c echo.Context) error {
	log := that.logger.With("method", "ResetProgress")

	result, err := that.manager.ResetProgress(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (that *BoardHandler) Export(c echo.Context) error {
	log := that.logger.With("method", "Export")

	document, err := that.manager.Export(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, log, err)
	}

	filename := fmt.Sprintf("resobingo-backup-%s.json", that.now().UTC().Format(time.DateOnly))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	return c.JSONPretty(http.StatusOK, document, "  ")
}

func (that *BoardHandler) Import(c echo.Context) error {
	log := that.logger.With("method", "Import")

	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportSize+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
	}

	if len(raw) > maxImportSize {
		return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "backup file is too large"})
	}

	board, err := that.manager.Import(c.Request().Context(), currentUser(c).ID, raw)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, newBoardResponse(board))
}

func (that *BoardHandler) ClearData(c echo.Context) error {
	log := that.logger.With("method", "ClearData")

	if err := that.manager.ClearData(c.Request().Context(), currentUser(c).ID); err != nil {
		return respondError(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func squareIndex(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrIndexOutOfRange, c.Param("index"))
	}

	return index, nil
}
