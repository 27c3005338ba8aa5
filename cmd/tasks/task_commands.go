package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/internal/validation"
	"github.com/amonks/tasks/notify"
	"github.com/amonks/tasks/task"
	"github.com/spf13/cobra"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var (
	addDescription string
	addPriority    string
)

// list
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tasks",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listStatus   string
	listPriority string
	listProject  string
	listJSON     bool
)

// show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// update
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateStatus      string
)

// done
var doneCmd = &cobra.Command{
	Use:     "done <id>...",
	Short:   "Mark one or more tasks as done",
	Aliases: []string{"complete"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDone,
}

var doneNotify string

// assign
var assignCmd = &cobra.Command{
	Use:   "assign <id> [project]",
	Short: "Assign a task to a project, or clear its project with --clear",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAssign,
}

var assignClear bool

// delete
var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Short:   "Delete one or more tasks",
	Aliases: []string{"rm"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

var (
	priorityChoices = validation.FormatChoices(task.ValidPriorities())
	statusChoices   = validation.FormatChoices(task.ValidStatuses())
)

func init() {
	rootCmd.AddCommand(addCmd, listCmd, showCmd, updateCmd, doneCmd, assignCmd, deleteCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(task.PriorityMedium), "Priority ("+priorityChoices+")")

	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Filter by status ("+statusChoices+")")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority ("+priorityChoices+")")
	listCmd.Flags().StringVar(&listProject, "project", "", "Filter by project id")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority ("+priorityChoices+")")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "New status ("+statusChoices+")")

	doneCmd.Flags().StringVar(&doneNotify, "notify", "", "Email a completion notice to this address")

	assignCmd.Flags().BoolVar(&assignClear, "clear", false, "Remove the task from its project")
}

func runAdd(cmd *cobra.Command, args []string) error {
	description, err := resolveDescriptionFromStdin(addDescription, cmd.InOrStdin())
	if err != nil {
		return err
	}
	priority, err := parsePriority(addPriority)
	if err != nil {
		return err
	}

	m, _, err := openManager(cmd)
	if err != nil {
		return err
	}

	id, err := m.Add(args[0], task.AddOptions{Description: description, Priority: priority})
	if err != nil {
		return err
	}
	if err := m.Save(""); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", ui.HighlightID(id), args[0])
	return nil
}

func listFilter(cmd *cobra.Command) (task.Filter, error) {
	var filter task.Filter
	if cmd.Flags().Changed("status") {
		status, err := parseStatus(listStatus)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if cmd.Flags().Changed("priority") {
		priority, err := parsePriority(listPriority)
		if err != nil {
			return filter, err
		}
		filter.Priority = &priority
	}
	if cmd.Flags().Changed("project") {
		filter.ProjectID = task.StringPtr(listProject)
	}
	return filter, nil
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := listFilter(cmd)
	if err != nil {
		return err
	}

	m, _, err := openManager(cmd)
	if err != nil {
		return err
	}

	tasks := m.Filter(filter)
	if listJSON {
		return encodeJSON(cmd.OutOrStdout(), records(tasks))
	}
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), formatTaskTable(tasks, time.Now()))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	m, _, err := openManager(cmd)
	if err != nil {
		return err
	}

	tasks, err := getTasks(m, ids)
	if err != nil {
		return err
	}

	if showJSON {
		return encodeJSON(cmd.OutOrStdout(), records(tasks))
	}
	for i, t := range tasks {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		printTaskDetail(cmd.OutOrStdout(), t)
	}
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	if !hasChangedFlags(cmd, "title", "description", "priority", "status") {
		return errors.New("nothing to update (use --title, --description, --priority or --status)")
	}

	var opts task.UpdateOptions
	if cmd.Flags().Changed("title") {
		if err := task.ValidateTitle(updateTitle); err != nil {
			return err
		}
		opts.Title = &updateTitle
	}
	if cmd.Flags().Changed("description") {
		description, err := resolveDescriptionFromStdin(updateDescription, cmd.InOrStdin())
		if err != nil {
			return err
		}
		opts.Description = &description
	}
	if cmd.Flags().Changed("priority") {
		priority, err := parsePriority(updatePriority)
		if err != nil {
			return err
		}
		opts.Priority = &priority
	}
	if cmd.Flags().Changed("status") {
		status, err := parseStatus(updateStatus)
		if err != nil {
			return err
		}
		opts.Status = &status
	}

	m, _, err := openManager(cmd)
	if err != nil {
		return err
	}
	if err := m.Update(id, opts); err != nil {
		return err
	}
	if err := m.Save(""); err != nil {
		return err
	}

	updated, _ := m.Get(id)
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", ui.HighlightID(id), updated.Title)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}
	if doneNotify != "" {
		if err := notify.ValidateAddress(doneNotify); err != nil {
			return err
		}
	}

	m, cfg, err := openManager(cmd)
	if err != nil {
		return err
	}
	if _, err := getTasks(m, ids); err != nil {
		return err
	}

	for _, id := range ids {
		if err := m.Complete(id); err != nil {
			return err
		}
	}
	if err := m.Save(""); err != nil {
		return err
	}

	completed, err := getTasks(m, ids)
	if err != nil {
		return err
	}
	for _, t := range completed {
		fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s: %s\n", ui.HighlightID(t.ID), t.Title)
	}

	if doneNotify == "" {
		return nil
	}

	n := newNotifier(cfg)
	if err := n.Connect(cmd.Context()); err != nil {
		return err
	}
	defer n.Disconnect()

	for _, t := range completed {
		receipt, err := n.SendCompletion(cmd.Context(), doneNotify, t.Title)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Sent completion notice for task %s to %s (%s)\n", ui.HighlightID(t.ID), receipt.To, receipt.ID)
	}
	return nil
}

func runAssign(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	var project *string
	switch {
	case assignClear && len(args) > 1:
		return errors.New("cannot combine a project with --clear")
	case assignClear:
	case len(args) > 1 && args[1] != "":
		project = &args[1]
	default:
		return errors.New("project id is required (or use --clear)")
	}

	m, _, err := openManager(cmd)
	if err != nil {
		return err
	}
	if err := m.AssignProject(id, project); err != nil {
		return err
	}
	if err := m.Save(""); err != nil {
		return err
	}

	if project == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared project for task %s\n", ui.HighlightID(id))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Assigned task %s to %s\n", ui.HighlightID(id), *project)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseTaskIDs(args)
	if err != nil {
		return err
	}

	m, _, err := openManager(cmd)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := m.Delete(id); err != nil {
			return err
		}
	}
	if err := m.Save(""); err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", ui.HighlightID(id))
	}
	return nil
}
