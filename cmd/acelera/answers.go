// Package main initial-answer commands.
package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joss/acelera/internal/render"
	"github.com/joss/acelera/internal/session"
)

func answersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answers",
		Short: "Initial questionnaire answers",
		Long:  "Fill in and inspect the step 1 questionnaire for the project",
	}

	// acelera answers set <criterion> <field> <value>
	setCmd := &cobra.Command{
		Use:   "set [criterion] [field] [value]",
		Short: "Set one answer field",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			criterion, field := args[0], args[1]
			if _, ok := eng.Variant().Criterion(criterion); !ok {
				exitOnError(fmt.Errorf("unknown criterion %q for kind %s", criterion, kindFlag))
			}
			if err := eng.SetAnswer(criterion, field, args[2]); err != nil {
				exitOnError(err)
			}
			if err := eng.Save(ctx); err != nil {
				exitOnError(err)
			}
			fmt.Printf("Saved %s.%s\n", criterion, field)
		},
	}

	// acelera answers show
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current answers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			sess := eng.Session()
			w := render.Stdout()
			for _, c := range eng.Variant().Criteria {
				w.Section(fmt.Sprintf("%s (%s)", c.Title, c.Key))
				fields := sess.Answers.Criteria[c.Key]
				keys := make([]string, 0, len(fields))
				for f := range fields {
					keys = append(keys, f)
				}
				sort.Strings(keys)
				for _, f := range keys {
					val := fields[f]
					if val == "" {
						val = "(empty)"
					}
					w.Item("%-12s %s", f, render.Truncate(val, 64))
				}
			}
			if _, ok := eng.Variant().ResourceCriterion(); ok {
				w.Line()
				w.Print("%s", render.New(pretty).Resources(sess.Answers.Resources))
			}
		},
	}

	// acelera answers missing
	missingCmd := &cobra.Command{
		Use:   "missing",
		Short: "List mandatory fields still empty",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			w := render.Stdout()
			missing := eng.Session().Answers.MissingMandatory(eng.Variant())
			if len(missing) == 0 {
				w.Println("All mandatory fields are filled")
				return
			}
			for _, pair := range missing {
				w.Item("%s.%s", pair[0], pair[1])
			}
		},
	}

	cmd.AddCommand(setCmd, showCmd, missingCmd, resourceCmd())
	return cmd
}

func resourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Budget resource table",
	}

	var note string
	addCmd := &cobra.Command{
		Use:   "add [component] [label] [quantity] [unit-price]",
		Short: "Add a resource row",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			qty, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				exitOnError(fmt.Errorf("quantity: %w", err))
			}
			price, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				exitOnError(fmt.Errorf("unit price: %w", err))
			}

			rows := append(eng.Session().Answers.Resources,
				session.NewResourceRow(args[0], args[1], qty, price, note))
			if err := eng.SetResources(rows); err != nil {
				exitOnError(err)
			}
			if err := eng.Save(ctx); err != nil {
				exitOnError(err)
			}
			fmt.Printf("Added row, total is now %.2f\n", session.ResourceTotal(rows))
		},
	}
	addCmd.Flags().StringVar(&note, "note", "", "Optional note for the row")

	removeCmd := &cobra.Command{
		Use:   "remove [index]",
		Short: "Remove a resource row by index",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			idx, err := strconv.Atoi(args[0])
			if err != nil {
				exitOnError(fmt.Errorf("index: %w", err))
			}
			rows := eng.Session().Answers.Resources
			if idx < 0 || idx >= len(rows) {
				exitOnError(fmt.Errorf("index %d out of range, table has %d rows", idx, len(rows)))
			}
			rows = append(rows[:idx], rows[idx+1:]...)
			if err := eng.SetResources(rows); err != nil {
				exitOnError(err)
			}
			if err := eng.Save(ctx); err != nil {
				exitOnError(err)
			}
			fmt.Println("Removed row")
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the resource table",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			eng, st, err := openEngine(ctx)
			if err != nil {
				exitOnError(err)
			}
			defer st.Close()

			r := render.New(pretty)
			fmt.Print(r.Resources(eng.Session().Answers.Resources))
		},
	}

	cmd.AddCommand(addCmd, removeCmd, listCmd)
	return cmd
}
