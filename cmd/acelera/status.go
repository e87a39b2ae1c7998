// Package main status, navigation and history commands.
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joss/acelera/internal/render"
)

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show assessment progress",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			r := render.New(pretty)
			fmt.Print(r.Status(eng.Session(), eng.Variant()))
		},
	}

	gotoCmd := &cobra.Command{
		Use:   "goto [step]",
		Short: "Navigate to a previously reached step",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			step, err := strconv.Atoi(args[0])
			if err != nil {
				exitOnError(fmt.Errorf("step: %w", err))
			}
			if err := eng.GoToStep(step); err != nil {
				exitOnError(err)
			}
			if err := eng.Save(ctx); err != nil {
				exitOnError(err)
			}
			fmt.Printf("Now at step %d\n", step)
		},
	}

	cmd.AddCommand(gotoCmd)
	return cmd
}

func restartCmd() *cobra.Command {
	var confirmed bool
	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Wipe all progress and return to step 1",
		Run: func(cmd *cobra.Command, args []string) {
			if !confirmed {
				exitOnError(fmt.Errorf("restart erases all answers and progress, pass --yes to confirm"))
			}
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			if err := eng.Restart(ctx); err != nil {
				exitOnError(err)
			}
			fmt.Println("Assessment restarted at step 1")
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the restart")
	return cmd
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved revisions of the session",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			st, err := openStore()
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			revisions, err := st.History(ctx, projectFlag, stageFlag, acceleratorFlag, limit)
			if err != nil {
				exitOnError(err)
			}
			r := render.New(pretty)
			fmt.Print(r.History(revisions))
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of revisions to show")
	return cmd
}
