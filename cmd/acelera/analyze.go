// Package main analysis and question commands.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joss/acelera/internal/render"
	"github.com/joss/acelera/internal/workflow"
)

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Submit answers for rubric analysis (step 1 to 2)",
		Long:  "Sends the questionnaire to the analysis service and stores the rubric scores",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			if err := eng.Analyze(ctx); err != nil {
				var missing *workflow.MissingFieldsError
				if errors.As(err, &missing) {
					fmt.Println("Fill in these mandatory answers first:")
					for _, pair := range missing.Fields {
						fmt.Printf("  %s.%s\n", pair[0], pair[1])
					}
					exitOnError(err)
				}
				exitOnError(err)
			}

			scores, err := eng.Scores()
			if err != nil {
				exitOnError(err)
			}
			r := render.New(pretty)
			fmt.Print(r.Scores(scores, eng.Variant()))
		},
	}
}

func questionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Follow-up questions (step 2 to 3)",
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate follow-up questions for criteria below their maximum",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			if err := eng.GenerateQuestions(ctx); err != nil {
				exitOnError(err)
			}
			r := render.New(pretty)
			fmt.Print(r.Questions(eng.Session().Questions))
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the generated questions",
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
			r := render.New(pretty)
			fmt.Print(r.Questions(sess.Questions))
		},
	}

	cmd.AddCommand(generateCmd, showCmd)
	return cmd
}

func scoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show the stored rubric scores",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			scores, err := eng.Scores()
			if err != nil {
				exitOnError(err)
			}
			r := render.New(pretty)
			fmt.Print(r.Scores(scores, eng.Variant()))
		},
	}
}
