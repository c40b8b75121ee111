package main

import (
	"fmt"
	"io"
	"os"

	"github.com/metalagman/agentflow/internal/agent"
	"github.com/metalagman/agentflow/internal/catalog"
	"github.com/spf13/cobra"
)

func agentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List configured agents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(workDir)
			if err != nil {
				return err
			}
			agents, _ := newRegistries(cfg)
			printAgents(cmd.OutOrStdout(), agents)
			return nil
		},
	}
}

func tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the task catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(workDir)
			if err != nil {
				return err
			}
			_, tasks := newRegistries(cfg)
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
}

func printAgents(out io.Writer, agents *agent.Registry) {
	fmt.Fprintln(out, headingStyle.Render("Agents"))
	for _, a := range agents.List() {
		fmt.Fprintf(out, "  %s  %s\n", nameStyle.Render(a.Name), mutedStyle.Render(string(a.Role)))
	}
}

func printTasks(out io.Writer, tasks *catalog.Catalog) {
	fmt.Fprintln(out, headingStyle.Render("Tasks"))
	for _, d := range tasks.List() {
		fmt.Fprintf(out, "  %s\n    %s\n", nameStyle.Render(d.Name), mutedStyle.Render(d.Instruction))
	}
}
