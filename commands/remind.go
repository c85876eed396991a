package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"callscope/internal/util"
)

var (
	remindAt  string
	remindIn  time.Duration
	remindAll bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage call-back reminders",
}

var remindSetCmd = &cobra.Command{
	Use:   "set <contact> <message...>",
	Short: "Set a reminder for a contact",
	Long: `Sets a reminder due either at an absolute time (--at "2026-01-15 09:00",
interpreted in the configured timezone) or after a duration (--in 2h).`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRemindSet,
}

var remindListCmd = &cobra.Command{
	Use:   "list [contact]",
	Short: "List open reminders, soonest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRemindList,
}

var remindDoneCmd = &cobra.Command{
	Use:   "done <reminder-id>",
	Short: "Mark a reminder completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemindDone,
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.AddCommand(remindSetCmd, remindListCmd, remindDoneCmd)

	remindSetCmd.Flags().StringVar(&remindAt, "at", "", `Due time ("2006-01-02 15:04")`)
	remindSetCmd.Flags().DurationVar(&remindIn, "in", 0, "Due after this duration (e.g., 2h, 30m)")
	remindListCmd.Flags().BoolVar(&remindAll, "all", false, "Include completed reminders")
}

func parseDueTime() (time.Time, error) {
	switch {
	case remindAt != "" && remindIn != 0:
		return time.Time{}, fmt.Errorf("--at and --in are mutually exclusive")
	case remindAt != "":
		tp := util.GetTimeProvider()
		due, err := time.ParseInLocation("2006-01-02 15:04", remindAt, tp.Now().Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --at value %q: expected \"2006-01-02 15:04\"", remindAt)
		}
		return due, nil
	case remindIn != 0:
		return time.Now().Add(remindIn), nil
	default:
		return time.Time{}, fmt.Errorf("a due time is required: pass --at or --in")
	}
}

func runRemindSet(cmd *cobra.Command, args []string) error {
	due, err := parseDueTime()
	if err != nil {
		return err
	}

	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := st.Find(ctx, args[0])
	if err != nil {
		return err
	}
	r, err := st.SetReminder(ctx, c.ID, strings.Join(args[1:], " "), due)
	if err != nil {
		return err
	}

	tp := util.GetTimeProvider()
	fmt.Printf("Reminder %s for %s due %s\n", r.ID, c.Name, tp.Format(due, "2006-01-02 15:04"))
	return nil
}

func runRemindList(cmd *cobra.Command, args []string) error {
	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	contactID := ""
	if len(args) == 1 {
		c, err := st.Find(ctx, args[0])
		if err != nil {
			return err
		}
		contactID = c.ID
	}

	reminders, err := st.ListReminders(ctx, contactID, remindAll)
	if err != nil {
		return err
	}
	if len(reminders) == 0 {
		fmt.Println("No reminders")
		return nil
	}

	tp := util.GetTimeProvider()
	for _, r := range reminders {
		c, err := st.Get(ctx, r.ContactID)
		name := r.ContactID
		if err == nil {
			name = c.Name
		}
		status := " "
		if r.Done {
			status = "✓"
		}
		fmt.Printf("[%s] %s  %s: %s (%s)\n",
			status, tp.Format(timeFromUnix(r.DueAt), "2006-01-02 15:04"), name, r.Message, r.ID)
	}
	return nil
}

func runRemindDone(cmd *cobra.Command, args []string) error {
	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.MarkReminderDone(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Reminder %s done\n", args[0])
	return nil
}
