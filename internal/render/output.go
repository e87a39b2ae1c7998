// Package render provides output formatting for terminal consumption.
package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/joss/acelera/internal/rubric"
	"github.com/joss/acelera/internal/score"
	"github.com/joss/acelera/internal/session"
	"github.com/joss/acelera/internal/store"
)

// Renderer handles output formatting.
type Renderer struct {
	pretty bool
}

// New creates a new renderer.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Status formats the session progress overview.
func (r *Renderer) Status(s *session.Session, v rubric.Variant) string {
	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Acelera Assessment\n"))
		sb.WriteString(strings.Repeat("─", 48) + "\n")
		fmt.Fprintf(&sb, "  Project:     %s\n", s.ProjectID)
		fmt.Fprintf(&sb, "  Kind:        %s\n", v.Name)
		fmt.Fprintf(&sb, "  Stage:       %d (accelerator %d)\n", s.Stage, s.Accelerator)
		fmt.Fprintf(&sb, "  Updated:     %s (%s ago)\n\n",
			s.LastUpdated.Format("2006-01-02 15:04"), FormatDuration(time.Since(s.LastUpdated)))
	} else {
		fmt.Fprintf(&sb, "project=%s kind=%s stage=%d accelerator=%d\n", s.ProjectID, s.Kind, s.Stage, s.Accelerator)
	}

	names := map[int]string{
		session.StepAnswers:  "Initial answers",
		session.StepAnalysis: "Rubric analysis",
		session.StepFollowUp: "Follow-up questions",
		session.StepResult:   "Final result",
	}
	for step := session.StepAnswers; step <= session.StepResult; step++ {
		marker := stepMarker(s, step, r.pretty)
		if r.pretty {
			fmt.Fprintf(&sb, "  %s Step %d  %s\n", marker, step, names[step])
		} else {
			fmt.Fprintf(&sb, "step=%d done=%v current=%v\n", step, s.IsComplete(step), s.CurrentStep == step)
		}
	}
	return sb.String()
}

func stepMarker(s *session.Session, step int, pretty bool) string {
	switch {
	case s.IsComplete(step) && pretty:
		return color.GreenString("✓")
	case s.IsComplete(step):
		return "✓"
	case s.CurrentStep == step && pretty:
		return color.YellowString("▶")
	case s.CurrentStep == step:
		return "▶"
	default:
		return "○"
	}
}

// Scores formats the normalized analysis as a per-criterion breakdown.
func (r *Renderer) Scores(a score.Analysis, v rubric.Variant) string {
	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.CyanString("Rubric Scores\n"))
		sb.WriteString(strings.Repeat("─", 48) + "\n")
	}

	for _, c := range v.Criteria {
		got := a.Criterion(c.Key)
		max := c.MaxScore()
		icon := ScoreIcon(got, max)
		if r.pretty {
			line := fmt.Sprintf("%-18s %5.1f / %.0f", c.Title, got, max)
			if got == max {
				fmt.Fprintf(&sb, "  %s %s\n", color.GreenString(icon), line)
			} else {
				fmt.Fprintf(&sb, "  %s %s\n", color.YellowString(icon), line)
			}
		} else {
			fmt.Fprintf(&sb, "%s %s %.1f/%.0f\n", icon, c.Key, got, max)
		}
		for _, ind := range a.Criteria[c.Key] {
			if ind.Comment == "" {
				continue
			}
			if r.pretty {
				fmt.Fprintf(&sb, "      %s\n", color.HiBlackString(Truncate(ind.Comment, 70)))
			}
		}
	}

	total := fmt.Sprintf("Total: %.1f / %.0f", a.Total(), a.MaxTotal)
	if r.pretty {
		sb.WriteString(strings.Repeat("─", 48) + "\n")
		sb.WriteString("  " + color.CyanString(total) + "\n")
	} else {
		sb.WriteString(total + "\n")
	}
	return sb.String()
}

// Questions formats the follow-up question set.
func (r *Renderer) Questions(qs session.QuestionSet) string {
	if len(qs) == 0 {
		return "No follow-up questions: every criterion is at its maximum\n"
	}

	keys := make([]string, 0, len(qs))
	for k := range qs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		cq := qs[key]
		title := cq.Title
		if title == "" {
			title = key
		}
		if r.pretty {
			sb.WriteString(color.CyanString(title) + "\n")
		} else {
			sb.WriteString(title + "\n")
		}
		if cq.Intro != "" {
			fmt.Fprintf(&sb, "  %s\n", cq.Intro)
		}
		for i, q := range cq.Questions {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, q)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Resources formats the budget table with recomputed subtotals.
func (r *Renderer) Resources(rows []session.ResourceRow) string {
	if len(rows) == 0 {
		return "Resource table is empty\n"
	}

	var sb strings.Builder
	if r.pretty {
		sb.WriteString(color.CyanString("Resources\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}
	for _, row := range rows {
		fmt.Fprintf(&sb, "  %-14s %-20s %6.1f x %8.2f = %10.2f\n",
			Truncate(row.Component, 14), Truncate(row.Label, 20), row.Quantity, row.UnitPrice, row.Subtotal)
	}
	total := fmt.Sprintf("%46s %10.2f", "Total:", session.ResourceTotal(rows))
	if r.pretty {
		sb.WriteString(strings.Repeat("─", 60) + "\n")
		sb.WriteString(color.CyanString(total) + "\n")
	} else {
		sb.WriteString(total + "\n")
	}
	return sb.String()
}

// Improved formats the final deliverable text grouped by criterion.
func (r *Renderer) Improved(improved map[string]map[string]string, v rubric.Variant) string {
	if len(improved) == 0 {
		return "No improved text yet\n"
	}

	var sb strings.Builder
	for _, c := range v.Criteria {
		fields, ok := improved[c.Key]
		if !ok {
			continue
		}
		if r.pretty {
			sb.WriteString(color.CyanString(c.Title) + "\n")
		} else {
			sb.WriteString(c.Title + "\n")
		}
		fieldKeys := make([]string, 0, len(fields))
		for f := range fields {
			fieldKeys = append(fieldKeys, f)
		}
		sort.Strings(fieldKeys)
		for _, f := range fieldKeys {
			if fields[f] == "" {
				continue
			}
			fmt.Fprintf(&sb, "  [%s]\n  %s\n\n", f, fields[f])
		}
	}
	return sb.String()
}

// History formats saved revisions, newest first.
func (r *Renderer) History(revisions []store.Revision) string {
	if len(revisions) == 0 {
		return "No saved revisions\n"
	}
	var sb strings.Builder
	for _, rev := range revisions {
		fmt.Fprintf(&sb, "  %s  step %d  %s\n", rev.SavedAt.Format("2006-01-02 15:04:05"), rev.Step, rev.ID)
	}
	return sb.String()
}

// FormatDuration formats a duration in human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
