package commands

import (
	"github.com/mpetrov/lifeline/internal/server"
	"github.com/mpetrov/lifeline/internal/store"
	"github.com/mpetrov/lifeline/internal/util"
	"github.com/mpetrov/lifeline/internal/watcher"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the timeline HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "",
		"Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	st, err := store.New(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(st, cfg)

	// Live-reload layout spacing while the server runs.
	if configPath != "" {
		cw, err := watcher.New(configPath)
		if err != nil {
			util.LogWarnf("config watch unavailable: %v", err)
		} else {
			defer cw.Close()
			go func() {
				for updated := range cw.Updates() {
					srv.SetLayoutConfig(updated.Layout)
				}
			}()
		}
	}

	return srv.Start(cfg.Server.Addr)
}
