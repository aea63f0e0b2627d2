package migration

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
)

// StepResult is the outcome of one migration step.
type StepResult struct {
	Step     string
	Entity   string
	Inserted int64
	Updated  int64
	// Skipped counts source rows that produced no insert: unmappable rows
	// and rows already present.
	Skipped int64
	Elapsed time.Duration
}

// Report summarizes one batch run.
type Report struct {
	RunID    uuid.UUID
	Target   Target
	Variants []string
	Batch    BatchTags
	State    State
	DryRun   bool
	Started  time.Time
	Elapsed  time.Duration
	Steps    []StepResult
}

// Inserted returns the inserted row counts per entity.
func (r *Report) Inserted() map[string]int64 {
	out := make(map[string]int64)
	for _, s := range r.Steps {
		out[s.Entity] += s.Inserted
	}
	return out
}

// Step returns the result of the named step.
func (r *Report) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// Print renders the report as a table.
func (r *Report) Print(w io.Writer) {
	mode := ""
	if r.DryRun {
		mode = " (dry run, rolled back)"
	}
	fmt.Fprintf(w, "Run %s: %s %s in %s%s\n", r.RunID, r.Target, stateLabel(r.State), r.Elapsed.Round(time.Millisecond), mode)
	if len(r.Variants) > 0 {
		fmt.Fprintf(w, "Variants: %s\n", strings.Join(r.Variants, ", "))
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Step", "Entity", "Inserted", "Updated", "Skipped", "Elapsed"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, s := range r.Steps {
		table.Append([]string{
			s.Step,
			s.Entity,
			fmt.Sprintf("%d", s.Inserted),
			fmt.Sprintf("%d", s.Updated),
			fmt.Sprintf("%d", s.Skipped),
			s.Elapsed.Round(time.Millisecond).String(),
		})
	}
	table.Render()
}

func stateLabel(s State) string {
	switch s {
	case StateDone:
		return color.GreenString(string(s))
	case StateFailed:
		return color.RedString(string(s))
	default:
		return color.YellowString(string(s))
	}
}
