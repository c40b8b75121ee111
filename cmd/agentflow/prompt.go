package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

// doneChoice ends task selection. Task names are never empty.
const doneChoice = ""

// pickFunc returns the next task to append to seq, or doneChoice.
type pickFunc func(seq []string) (string, error)

// collectSequence appends picks in the order they are made until doneChoice.
// The same task may be picked more than once.
func collectSequence(pick pickFunc) ([]string, error) {
	var seq []string
	for {
		choice, err := pick(seq)
		if err != nil {
			return nil, err
		}
		if choice == doneChoice {
			return seq, nil
		}
		seq = append(seq, choice)
	}
}

// selectNextTask shows one huh select per pick with the sequence built so far.
func selectNextTask(taskNames []string) pickFunc {
	return func(seq []string) (string, error) {
		options := make([]huh.Option[string], 0, len(taskNames)+1)
		if len(seq) > 0 {
			options = append(options, huh.NewOption("Done", doneChoice))
		}
		for _, name := range taskNames {
			options = append(options, huh.NewOption(name, name))
		}

		description := "No tasks selected yet."
		if len(seq) > 0 {
			description = "Sequence: " + strings.Join(seq, " -> ")
		}

		var choice string
		selectField := huh.NewSelect[string]().
			Title(fmt.Sprintf("Task %d", len(seq)+1)).
			Description(description).
			Options(options...).
			Value(&choice)

		if err := huh.NewForm(huh.NewGroup(selectField)).Run(); err != nil {
			return "", fmt.Errorf("prompt failed: %w", err)
		}
		return choice, nil
	}
}

// promptWorkflow asks for the tasks to run, in order, and an optional URL.
func promptWorkflow(taskNames []string, url string) ([]string, string, error) {
	if len(taskNames) == 0 {
		return nil, "", fmt.Errorf("no tasks registered")
	}

	seq, err := collectSequence(selectNextTask(taskNames))
	if err != nil {
		return nil, "", err
	}

	input := huh.NewInput().
		Title("Website URL (optional)").
		Placeholder("https://example.com").
		Value(&url)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return nil, "", fmt.Errorf("prompt failed: %w", err)
	}
	return seq, strings.TrimSpace(url), nil
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
