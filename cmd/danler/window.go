package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spicorn/Danler/backdrop/debugui"
	ebitenhost "github.com/spicorn/Danler/backdrop/ebiten"
	"github.com/spicorn/Danler/config"
	"github.com/spicorn/Danler/observability"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open a desktop window with the animated backdrop",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		b, err := newBackdrop(cfg, logger)
		if err != nil {
			return err
		}
		background, err := config.ParseInk(cfg.Window.Background)
		if err != nil {
			return err
		}

		opts := ebitenhost.Options{
			Width:        cfg.Window.Width,
			Height:       cfg.Window.Height,
			Title:        cfg.Window.Title,
			Background:   background.NRGBA(),
			LayerOpacity: cfg.Field.LayerOpacity,
			Logger:       logger,
		}
		if cfg.Window.Debug {
			opts.Overlay = debugui.NewInspector(b, cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, 120)
		}
		return ebitenhost.Run(b, opts)
	},
}

func init() {
	windowCmd.Flags().Int("width", 1280, "initial window width")
	windowCmd.Flags().Int("height", 720, "initial window height")
	windowCmd.Flags().Bool("debug", false, "show the inspector overlay")
	_ = viper.BindPFlag("window.width", windowCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("window.height", windowCmd.Flags().Lookup("height"))
	_ = viper.BindPFlag("window.debug", windowCmd.Flags().Lookup("debug"))

	rootCmd.AddCommand(windowCmd)
}
