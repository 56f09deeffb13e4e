package root

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/resobingo-backend/internal/bingo"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
	"github.com/rocketscienceinc/resobingo-backend/internal/ui"
)

func newListsCmd(open openFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage the resolution lists cards are drawn from",
	}

	cmd.AddCommand(newListsSetCmd(open), newListsShowCmd(open))

	return cmd
}

func newListsSetCmd(open openFunc) *cobra.Command {
	var standardPath, bossPath string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace both lists from text files, one resolution per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if standardPath == "" || bossPath == "" {
				return errors.New("--standard and --boss are required")
			}

			standard, err := readList(standardPath)
			if err != nil {
				return err
			}

			boss, err := readList(bossPath)
			if err != nil {
				return err
			}

			manager := open()
			defer manager.Close()

			lists, err := manager.SaveLists(cmd.Context(), localUserID, entity.NewResolutionLists(standard, boss))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" lists saved"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("standard", len(lists.Standard)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("boss", len(lists.Boss)))

			return nil
		},
	}

	cmd.Flags().StringVar(&standardPath, "standard", "", "file with standard resolutions")
	cmd.Flags().StringVar(&bossPath, "boss", "", "file with boss resolutions")

	return cmd
}

func newListsShowCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored lists and whether they can fill a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager := open()
			defer manager.Close()

			lists, err := manager.GetLists(cmd.Context(), localUserID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if lists.IsEmpty() {
				fmt.Fprintln(out, ui.Muted.Render("No lists saved yet. Run `resobingo lists set` first."))
				return nil
			}

			fmt.Fprintln(out, ui.Title.Render("Standard"))
			fmt.Fprintln(out, strings.Join(lists.Standard, "\n"))
			fmt.Fprintln(out, ui.Title.Render("Boss"))
			fmt.Fprintln(out, strings.Join(lists.Boss, "\n"))

			if result := bingo.ValidateLists(lists.Standard, lists.Boss); !result.Valid {
				fmt.Fprintln(out, ui.Bad.Render(result.Message()))
			}

			return nil
		},
	}
}

func readList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return bingo.ParseResolutionList(string(data)), nil
}
