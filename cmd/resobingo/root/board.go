package root

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
	"github.com/rocketscienceinc/resobingo-backend/internal/ui"
	"github.com/rocketscienceinc/resobingo-backend/internal/usecase"
)

var errNoBoard = errors.New("no card yet, run `resobingo new` first")

func newNewCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Lay out a fresh card from the stored lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := open()
			defer manager.Close()

			board, err := manager.NewBoard(cmd.Context(), localUserID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderBoard(board))

			return nil
		},
	}
}

func newShowCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := open()
			defer manager.Close()

			board, err := manager.GetBoard(cmd.Context(), localUserID)
			if errors.Is(err, apperror.ErrBoardNotFound) {
				return errNoBoard
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderBoard(board))

			return nil
		},
	}
}

func newMarkCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <index>",
		Short: "Toggle a square between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			manager := open()
			defer manager.Close()

			result, err := manager.ToggleSquare(cmd.Context(), localUserID, index)
			if err != nil {
				return mutationError(err)
			}

			printResult(cmd.OutOrStdout(), result)

			return nil
		},
	}
}

func newEditCmd(open openFunc) *cobra.Command {
	var boss, noBoss bool

	cmd := &cobra.Command{
		Use:   "edit <index> <text>",
		Short: "Change the text of a square, optionally making it the boss",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			var isBoss *bool
			switch {
			case boss:
				isBoss = &boss
			case noBoss:
				isBoss = new(bool)
			}

			manager := open()
			defer manager.Close()

			result, err := manager.EditSquare(cmd.Context(), localUserID, index, args[1], isBoss)
			if err != nil {
				return mutationError(err)
			}

			printResult(cmd.OutOrStdout(), result)

			return nil
		},
	}

	cmd.Flags().BoolVar(&boss, "boss", false, "make this square the boss")
	cmd.Flags().BoolVar(&noBoss, "no-boss", false, "clear the boss flag of this square")
	cmd.MarkFlagsMutuallyExclusive("boss", "no-boss")

	return cmd
}

func newResetCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Unmark every square",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := open()
			defer manager.Close()

			result, err := manager.ResetProgress(cmd.Context(), localUserID)
			if err != nil {
				return mutationError(err)
			}

			printResult(cmd.OutOrStdout(), result)

			return nil
		},
	}
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil || index < 0 || index >= entity.BoardSize {
		return 0, fmt.Errorf("index must be a number between 0 and %d", entity.BoardSize-1)
	}

	return index, nil
}

func mutationError(err error) error {
	if errors.Is(err, apperror.ErrBoardNotFound) {
		return errNoBoard
	}

	return err
}

func printResult(out io.Writer, result *usecase.MutationResult) {
	fmt.Fprintln(out, ui.RenderBoard(result.Board))

	if result.NewBingo {
		fmt.Fprintln(out, ui.Title.Render(ui.IconBingo+" BINGO!"))
	}
}
