// Package main export command.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joss/acelera/internal/config"
	"github.com/joss/acelera/internal/render"
	"github.com/joss/acelera/internal/session"
	"github.com/joss/acelera/internal/workflow"
)

func exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the assessment to a file",
		Long:  "Writes the session (answers, scores, questions and improved text) to the exports directory",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			paths := config.GetPaths()
			if err := config.EnsureDir(paths.Exports); err != nil {
				exitOnError(err)
			}

			sess := eng.Session()
			stamp := time.Now().Format("20060102-150405")
			var path string

			switch format {
			case "json":
				path = filepath.Join(paths.Exports, fmt.Sprintf("%s-%s.json", sess.ProjectID, stamp))
				data, err := json.MarshalIndent(sess, "", "  ")
				if err != nil {
					exitOnError(err)
				}
				if err := os.WriteFile(path, data, 0644); err != nil {
					exitOnError(err)
				}
			case "markdown", "md":
				path = filepath.Join(paths.Exports, fmt.Sprintf("%s-%s.md", sess.ProjectID, stamp))
				if err := os.WriteFile(path, []byte(exportMarkdown(eng)), 0644); err != nil {
					exitOnError(err)
				}
			default:
				exitOnError(fmt.Errorf("unknown format %q, use json or markdown", format))
			}

			fmt.Printf("Exported to %s\n", path)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Export format (json, markdown)")
	return cmd
}

func exportMarkdown(eng *workflow.Engine) string {
	sess := eng.Session()
	v := eng.Variant()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", sess.ProjectID)
	fmt.Fprintf(&sb, "Kind: %s, stage %d, accelerator %d\n\n", v.Name, sess.Stage, sess.Accelerator)

	sb.WriteString("## Answers\n\n")
	for _, c := range v.Criteria {
		fmt.Fprintf(&sb, "### %s\n\n", c.Title)
		for _, f := range c.Fields {
			if val := sess.Answers.Get(c.Key, f); val != "" {
				fmt.Fprintf(&sb, "**%s**\n\n%s\n\n", f, val)
			}
		}
	}

	if len(sess.Answers.Resources) > 0 {
		sb.WriteString("## Resources\n\n")
		sb.WriteString("| Component | Label | Quantity | Unit price | Subtotal |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, row := range sess.Answers.Resources {
			fmt.Fprintf(&sb, "| %s | %s | %.1f | %.2f | %.2f |\n",
				row.Component, row.Label, row.Quantity, row.UnitPrice, row.Subtotal)
		}
		fmt.Fprintf(&sb, "\nTotal: %.2f\n\n", session.ResourceTotal(sess.Answers.Resources))
	}

	if scores, err := eng.Scores(); err == nil {
		sb.WriteString("## Scores\n\n")
		for _, c := range v.Criteria {
			fmt.Fprintf(&sb, "- %s: %.1f / %.0f\n", c.Title, scores.Criterion(c.Key), c.MaxScore())
		}
		fmt.Fprintf(&sb, "\nTotal: %.1f / %.0f\n\n", scores.Total(), scores.MaxTotal)
	}

	if sess.HasImprovedText() {
		sb.WriteString("## Improved text\n\n")
		sb.WriteString(render.New(false).Improved(sess.ImprovedText, v))
	}

	return sb.String()
}
