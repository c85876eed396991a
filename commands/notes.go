package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"callscope/internal/util"
)

func timeFromUnix(sec int64) time.Time {
	return time.Unix(sec, 0)
}

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage notes attached to contacts",
}

var notesAddCmd = &cobra.Command{
	Use:   "add <contact> <text...>",
	Short: "Attach a note to a contact",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runNotesAdd,
}

var notesListCmd = &cobra.Command{
	Use:   "list <contact>",
	Short: "List a contact's notes, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesList,
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <note-id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotesRm,
}

func init() {
	rootCmd.AddCommand(notesCmd)
	notesCmd.AddCommand(notesAddCmd, notesListCmd, notesRmCmd)
}

func runNotesAdd(cmd *cobra.Command, args []string) error {
	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := st.Find(ctx, args[0])
	if err != nil {
		return err
	}
	note, err := st.AddNote(ctx, c.ID, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Printf("Added note %d to %s\n", note.ID, c.Name)
	return nil
}

func runNotesList(cmd *cobra.Command, args []string) error {
	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := st.Find(ctx, args[0])
	if err != nil {
		return err
	}
	notes, err := st.ListNotes(ctx, c.ID)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Printf("No notes for %s\n", c.Name)
		return nil
	}

	tp := util.GetTimeProvider()
	fmt.Printf("Notes for %s:\n", c.Name)
	for _, n := range notes {
		created := tp.Format(timeFromUnix(n.CreatedAt), "2006-01-02 15:04")
		fmt.Printf("  [%d] %s  %s\n", n.ID, created, n.Body)
	}
	return nil
}

func runNotesRm(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid note id %q", args[0])
	}

	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.RemoveNote(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Removed note %d\n", id)
	return nil
}
