// Package main supplementary-answer and synthesis commands.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joss/acelera/internal/render"
	"github.com/joss/acelera/internal/workflow"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Supplementary answers and synthesis (step 3 to 4)",
	}

	respondCmd := &cobra.Command{
		Use:   "respond [criterion] [field] [answer]",
		Short: "Record a supplementary answer",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			sess := eng.Session()
			if !sess.HasQuestions() {
				exitOnError(workflow.ErrNoQuestions)
			}
			criterion := args[0]
			if _, ok := sess.Questions[criterion]; !ok {
				exitOnError(fmt.Errorf("no follow-up questions for criterion %q", criterion))
			}
			if err := eng.SetFollowUpAnswer(criterion, args[1], args[2]); err != nil {
				exitOnError(err)
			}
			if err := eng.Save(ctx); err != nil {
				exitOnError(err)
			}
			fmt.Printf("Recorded supplementary answer for %s.%s\n", criterion, args[1])
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Synthesize improved text from all answers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			if err := eng.EvaluateFollowUp(ctx); err != nil {
				exitOnError(err)
			}
			r := render.New(pretty)
			fmt.Print(r.Improved(eng.Session().ImprovedText, eng.Variant()))
		},
	}

	cmd.AddCommand(respondCmd, runCmd)
	return cmd
}

func resultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result",
		Short: "Show the final improved text",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			sess := eng.Session()
			if !sess.HasImprovedText() {
				exitOnError(fmt.Errorf("no result yet: run 'acelera evaluate run' first"))
			}
			r := render.New(pretty)
			fmt.Print(r.Improved(sess.ImprovedText, eng.Variant()))
		},
	}
}
