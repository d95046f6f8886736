package commands

import (
	"fmt"

	"github.com/mpetrov/lifeline/internal/core/model"
	"github.com/mpetrov/lifeline/internal/store"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample chapters and events into the database",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	st, err := store.New(cfg.Server.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	type seedChapter struct {
		title  string
		start  string
		end    string
		color  string
		events []model.Event
	}

	chapters := []seedChapter{
		{
			title: "University", start: "2015-09-01", end: "2019-06-30", color: "#3B82F6",
			events: []model.Event{
				{Title: "Moved into the dorms", Date: "2015-09-01", Content: "First day away from home. Roommate snores."},
				{Title: "Switched major to CS", Date: "2016-02-15", Content: "Intro to algorithms finally clicked."},
				{Title: "Graduation", Date: "2019-06-28", Content: "Walked the stage, returned the gown, kept the hat."},
			},
		},
		{
			title: "First Job", start: "2019-08-01", end: "2022-03-31", color: "#10B981",
			events: []model.Event{
				{Title: "Started at the startup", Date: "2019-08-05", Content: "Four people, one whiteboard, too much coffee."},
				{Title: "First production outage", Date: "2020-01-20", Content: "Learned what a runbook is, the hard way."},
				{Title: "Promoted to senior", Date: "2021-11-01", Content: ""},
			},
		},
		{
			title: "Sabbatical", start: "2022-04-01", end: "2022-12-31", color: "#F59E0B",
			events: []model.Event{
				{Title: "Landed in Lisbon", Date: "2022-04-10", Content: "Six months, one backpack."},
				{Title: "Finished the novel draft", Date: "2022-10-02", Content: "87,000 words, most of them removable."},
			},
		},
	}

	var total int
	for order, sc := range chapters {
		end := sc.end
		chapterID, err := st.CreateChapter(model.Chapter{
			Type:      model.TypeMainPeriod,
			Title:     sc.title,
			StartDate: sc.start,
			EndDate:   &end,
			Color:     sc.color,
			Order:     order,
		})
		if err != nil {
			return err
		}
		for i, e := range sc.events {
			e.Chapter = &chapterID
			e.Order = i
			if _, err := st.CreateEvent(e); err != nil {
				return err
			}
			total++
		}
	}

	// One uncategorized event, so the synthetic trailing period shows up.
	if _, err := st.CreateEvent(model.Event{
		Title: "Adopted a cat", Date: "2023-03-12", Content: "Her name is Turing.",
	}); err != nil {
		return err
	}
	total++

	// A branch with its own period, anchored to the sabbatical chapter.
	sabbatical, err := st.ListChapters()
	if err != nil {
		return err
	}
	var sourceID *int64
	for i := range sabbatical {
		if sabbatical[i].Title == "Sabbatical" {
			sourceID = &sabbatical[i].ID
		}
	}
	branchEnd := "2022-12-31"
	branchID, err := st.CreateBranch(
		model.Chapter{
			Title:         "Branch: Writing",
			StartDate:     "2022-05-01",
			EndDate:       &branchEnd,
			Color:         "#8B5CF6",
			XPosition:     700,
			SourceChapter: sourceID,
		},
		model.Chapter{
			Title:     "Drafting",
			StartDate: "2022-05-01",
			EndDate:   &branchEnd,
		},
	)
	if err != nil {
		return err
	}

	periods, err := st.ListChapters()
	if err != nil {
		return err
	}
	var draftingID *int64
	for i := range periods {
		p := &periods[i]
		if p.ParentBranch != nil && *p.ParentBranch == branchID {
			draftingID = &p.ID
		}
	}
	branchEvents := []model.Event{
		{Title: "Outlined part one", Date: "2022-05-14", Content: "Index cards everywhere."},
		{Title: "Hit 50k words", Date: "2022-08-03", Content: ""},
	}
	for i, e := range branchEvents {
		e.Chapter = draftingID
		e.Order = i
		if _, err := st.CreateEvent(e); err != nil {
			return err
		}
		total++
	}

	fmt.Printf("Seeded %d chapters, 1 branch, %d events into %s\n",
		len(chapters), total, cfg.Server.DBPath)
	return nil
}
