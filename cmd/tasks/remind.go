package main

import (
	"fmt"
	"time"

	"github.com/amonks/tasks/internal/config"
	"github.com/amonks/tasks/internal/ui"
	"github.com/amonks/tasks/notify"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind <id>",
	Short: "Email a reminder about a task",
	Long: `Email a reminder about a task.

SMTP settings come from the [smtp] section of tasks.toml or
~/.config/tasks/config.toml. The password may also be set with
TASKS_SMTP_PASSWORD.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemind,
}

var (
	remindTo  string
	remindDue string
)

func init() {
	rootCmd.AddCommand(remindCmd)

	remindCmd.Flags().StringVar(&remindTo, "to", "", "Recipient email address")
	remindCmd.Flags().StringVar(&remindDue, "due", "", "Due time, as YYYY-MM-DD or YYYY-MM-DD HH:MM")
	_ = remindCmd.MarkFlagRequired("to")
}

func runRemind(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	if err := notify.ValidateAddress(remindTo); err != nil {
		return err
	}

	var due time.Time
	if remindDue != "" {
		due, err = parseDue(remindDue)
		if err != nil {
			return err
		}
	}

	m, cfg, err := openManager(cmd)
	if err != nil {
		return err
	}
	tasks, err := getTasks(m, []int{id})
	if err != nil {
		return err
	}

	n := newNotifier(cfg)
	if err := n.Connect(cmd.Context()); err != nil {
		return err
	}
	defer n.Disconnect()

	receipt, err := n.SendReminder(cmd.Context(), remindTo, tasks[0].Title, due)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Sent reminder for task %s to %s (%s)\n", ui.HighlightID(id), receipt.To, receipt.ID)
	return nil
}

func newNotifier(cfg *config.Config) *notify.Notifier {
	return notify.New(notifyConfig(cfg.SMTP), notify.WithLogger(logger))
}

func notifyConfig(smtp config.SMTP) notify.Config {
	return notify.Config{
		Host:     smtp.Host,
		Port:     smtp.Port,
		Username: smtp.Username,
		Password: smtp.Password,
		From:     smtp.From,
		Timeout:  smtp.Timeout,
	}
}
