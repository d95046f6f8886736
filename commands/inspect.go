package commands

import (
	"github.com/mpetrov/lifeline/internal/core/timeline"
	"github.com/mpetrov/lifeline/internal/presentation/formatter"
	"github.com/mpetrov/lifeline/internal/store"
	"github.com/mpetrov/lifeline/internal/util"
	"github.com/spf13/cobra"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the derived timeline structure",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "output", "o", "table",
		"Output format (table, json)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	f, err := formatter.NewFormatter(inspectFormat)
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
	return f.Format(&data)
}
