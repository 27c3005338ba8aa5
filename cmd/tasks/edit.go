package main

import (
	"errors"
	"fmt"

	"github.com/amonks/tasks/internal/editor"
	"github.com/amonks/tasks/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task in $EDITOR",
	Long: `Edit a task in $EDITOR.

The task opens as a TOML header (title, priority, status, project)
followed by a --- line and the description.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var editForce bool

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().BoolVar(&editForce, "force", false, "Open $EDITOR even when stdin is not a terminal")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	if !editForce && !editor.IsInteractive() {
		return errors.New("edit needs a terminal (use update, or --force)")
	}

	m, _, err := openManager(cmd)
	if err != nil {
		return err
	}
	tasks, err := getTasks(m, []int{id})
	if err != nil {
		return err
	}

	parsed, err := editor.EditTask(tasks[0])
	if err != nil {
		return err
	}
	if err := m.Update(id, parsed.UpdateOptions()); err != nil {
		return err
	}
	if err := m.AssignProject(id, parsed.ProjectID()); err != nil {
		return err
	}
	if err := m.Save(""); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", ui.HighlightID(id), parsed.Title)
	return nil
}
