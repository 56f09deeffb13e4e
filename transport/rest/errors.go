package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/bingo"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to status codes. Validation and import messages
// are meant for the user and are sent as they are.
func respondError(c echo.Context, log *slog.Logger, err error) error {
	var validationErr *bingo.ValidationError
	var importErr *bingo.ImportError

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: validationErr.Error()})
	case errors.As(err, &importErr):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: importErr.Error()})
	case errors.Is(err, apperror.ErrIndexOutOfRange),
		errors.Is(err, apperror.ErrEmptySquareText),
		errors.Is(err, apperror.ErrSquareTextTooLong):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrBoardNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "No board found"})
	case errors.Is(err, apperror.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	default:
		log.Error("request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}
