// Package main provides the acelera CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/joss/acelera/internal/config"
)

var (
	version = "0.1.0"
	pretty  = true

	projectFlag     string
	kindFlag        string
	stageFlag       int
	acceleratorFlag int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "acelera",
		Short: "Acelera - guided self-assessment for educational innovation projects",
		Long: `Acelera: guided multi-stage self-assessment for project submissions.

The assessment runs in four steps:
  1. Initial answers      Fill in the questionnaire for your project kind
  2. Rubric analysis      Remote scoring of your answers against the rubric
  3. Follow-up questions  Targeted questions for criteria below their maximum
  4. Final result         Improved text synthesized from all your answers

Use 'acelera status' to see where a project stands.
Use 'acelera wizard' for the interactive flow.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			env := config.Env()
			if projectFlag == "" {
				projectFlag = env.ProjectID
			}
			if kindFlag == "" {
				kindFlag = env.Kind
			}
			if stageFlag == 0 {
				stageFlag = env.Stage
			}
			if acceleratorFlag == 0 {
				acceleratorFlag = env.Accelerator
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				pretty = false
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "Project identifier")
	rootCmd.PersistentFlags().StringVarP(&kindFlag, "kind", "k", "", "Project kind (pedagogical, management, technology, community)")
	rootCmd.PersistentFlags().IntVar(&stageFlag, "stage", 0, "Certification stage")
	rootCmd.PersistentFlags().IntVar(&acceleratorFlag, "accelerator", 0, "Accelerator number within the stage")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty terminal output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("acelera %s\n", version)
		},
	}

	rootCmd.AddCommand(
		versionCmd,
		statusCmd(),
		answersCmd(),
		analyzeCmd(),
		scoresCmd(),
		questionsCmd(),
		evaluateCmd(),
		resultCmd(),
		restartCmd(),
		historyCmd(),
		exportCmd(),
		wizardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
