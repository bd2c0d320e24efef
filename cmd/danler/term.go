package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spicorn/Danler/backdrop/term"
	"github.com/spicorn/Danler/config"
	"github.com/spicorn/Danler/observability"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Animate the backdrop in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		b, err := newBackdrop(cfg, logger)
		if err != nil {
			return err
		}
		background, err := config.ParseInk(cfg.Terminal.Background)
		if err != nil {
			return err
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("creating screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("initializing screen: %w", err)
		}
		defer screen.Fini()
		screen.HideCursor()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return term.Run(ctx, screen, b, term.Options{
			CellWidth:  cfg.Terminal.CellWidth,
			CellHeight: cfg.Terminal.CellHeight,
			FPS:        cfg.Terminal.FPS,
			Background: background,
			Logger:     logger,
		})
	},
}

func init() {
	termCmd.Flags().Int("fps", 30, "frames per second")
	_ = viper.BindPFlag("terminal.fps", termCmd.Flags().Lookup("fps"))

	rootCmd.AddCommand(termCmd)
}
