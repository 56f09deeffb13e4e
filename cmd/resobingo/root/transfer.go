package root

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/ui"
)

func newExportCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write a backup of the card and lists, to stdout when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := open()
			defer manager.Close()

			document, err := manager.Export(cmd.Context(), localUserID)
			if errors.Is(err, apperror.ErrBoardNotFound) {
				return errNoBoard
			}
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(document, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode backup: %w", err)
			}

			if len(args) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			if err = os.WriteFile(args[0], append(data, '\n'), 0o600); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" backup written to "+args[0]))

			return nil
		},
	}
}

func newImportCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the card and lists with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}

			manager := open()
			defer manager.Close()

			board, err := manager.Import(cmd.Context(), localUserID, raw)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderBoard(board))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" backup imported"))

			return nil
		},
	}
}

func newClearCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the card and the lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := open()
			defer manager.Close()

			if err := manager.ClearData(cmd.Context(), localUserID); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" all data cleared"))

			return nil
		},
	}
}
