package commands

import (
	"fmt"
	"os"

	"github.com/mpetrov/lifeline/internal/core/timeline"
	"github.com/mpetrov/lifeline/internal/presentation/layout"
	"github.com/mpetrov/lifeline/internal/presentation/render"
	"github.com/mpetrov/lifeline/internal/store"
	"github.com/mpetrov/lifeline/internal/util"
	"github.com/spf13/cobra"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the timeline as an SVG file",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "timeline.svg",
		"Output file path (- for stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	st, err := store.New(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	chapters, err := st.ListChapters()
	if err != nil {
		return err
	}
	events, err := st.ListEvents()
	if err != nil {
		return err
	}

	data := timeline.Derive(chapters, events, util.Now())
	engine := layout.NewEngine(cfg.Layout)
	result := engine.Layout(data.MainTimeline, cfg.Viewport.Height)
	svg := render.New(engine, cfg.Viewport.Width).SVG(&data, result)

	if renderOut == "-" {
		_, err = os.Stdout.Write(svg)
		return err
	}
	if err := os.WriteFile(renderOut, svg, 0644); err != nil {
		return fmt.Errorf("write %s: %w", renderOut, err)
	}
	fmt.Printf("Wrote %s (%d periods, %d entries, %d branches)\n",
		renderOut, len(data.MainTimeline), data.CountEntries(), len(data.Branches))
	return nil
}
