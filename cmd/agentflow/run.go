package main

import (
	"errors"
	"os"

	"github.com/metalagman/agentflow/internal/pipeline"
	"github.com/spf13/cobra"
)

var errNoTasks = errors.New("at least one task is required")

func runCmd() *cobra.Command {
	var (
		taskNames   []string
		url         string
		interactive bool
		plain       bool
	)
	cmd := &cobra.Command{
		Use:   "run [task...]",
		Short: "Run tasks in order, feeding each result into the next",
		Example: `  agentflow run --task "Requirements Gathering" --task "Script Generation" --url https://example.com
  agentflow run --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(workDir)
			if err != nil {
				return err
			}
			agents, tasks := newRegistries(cfg)

			taskNames = append(taskNames, args...)
			if interactive || (len(taskNames) == 0 && isTerminal(os.Stdin)) {
				taskNames, url, err = promptWorkflow(tasks.Names(), url)
				if err != nil {
					return err
				}
			}
			if len(taskNames) == 0 {
				return errNoTasks
			}

			r, err := newRenderer(cmd.OutOrStdout(), plain || !isTerminal(os.Stdout))
			if err != nil {
				return err
			}
			executor, err := newExecutor(cmd.Context(), cfg, agents, tasks, pipeline.Options{Observer: r})
			if err != nil {
				return err
			}
			res := executor.Run(cmd.Context(), taskNames, url)
			r.Summary(res)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&taskNames, "task", nil, "task name to run, repeat to build the sequence")
	cmd.Flags().StringVar(&url, "url", "", "website URL scraped for Requirements Gathering")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose tasks and URL interactively")
	cmd.Flags().BoolVar(&plain, "plain", false, "print plain text without styling")
	return cmd
}
