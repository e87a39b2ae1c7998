// Package main interactive wizard command.
package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joss/acelera/internal/tui"
)

func wizardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Interactive assessment wizard",
		Long:  "Walk through the four assessment steps in a full-screen terminal UI",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			p := tea.NewProgram(tui.New(eng), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				exitOnError(err)
			}
		},
	}
}
