package root

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/resobingo-backend/internal/repository"
	"github.com/rocketscienceinc/resobingo-backend/internal/ui"
	"github.com/rocketscienceinc/resobingo-backend/internal/usecase"
)

const (
	Version = "0.1.0"

	// localUserID names the single profile kept in the data directory.
	localUserID = "local"
)

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	var dataDir string

	rootCmd := &cobra.Command{
		Use:           "resobingo",
		Short:         "ResoBingo, a bingo card for your resolutions",
		Long:          "ResoBingo lays your resolutions out on a 5x5 card with a boss challenge in the center. Complete a row, column or diagonal for a bingo.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "directory holding the card and the lists")

	open := func() *usecase.BoardManager {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		return usecase.NewBoardManager(logger, repository.NewFileBoardStore(dataDir))
	}

	rootCmd.AddCommand(
		newListsCmd(open),
		newNewCmd(open),
		newShowCmd(open),
		newMarkCmd(open),
		newEditCmd(open),
		newResetCmd(open),
		newExportCmd(open),
		newImportCmd(open),
		newClearCmd(open),
	)

	return rootCmd
}

type openFunc func() *usecase.BoardManager

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".resobingo"
	}

	return filepath.Join(homeDir, ".resobingo")
}
