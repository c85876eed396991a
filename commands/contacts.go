package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"callscope/internal/data/store"
)

var (
	contactsEditName  string
	contactsEditPhone string
	contactsFavOff    bool
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage the address book",
	RunE:  runContactsList,
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts sorted by name",
	RunE:  runContactsList,
}

var contactsAddCmd = &cobra.Command{
	Use:   "add <name> <phone>",
	Short: "Add a contact",
	Args:  cobra.ExactArgs(2),
	RunE:  runContactsAdd,
}

var contactsEditCmd = &cobra.Command{
	Use:   "edit <id|name>",
	Short: "Change a contact's name or phone",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsEdit,
}

var contactsRmCmd = &cobra.Command{
	Use:   "rm <id|name>",
	Short: "Remove a contact and its notes and reminders",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsRm,
}

var contactsFavCmd = &cobra.Command{
	Use:   "fav <id|name>",
	Short: "Mark a contact as a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsFav,
}

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.AddCommand(contactsListCmd, contactsAddCmd, contactsEditCmd, contactsRmCmd, contactsFavCmd)

	contactsEditCmd.Flags().StringVar(&contactsEditName, "name", "", "New name")
	contactsEditCmd.Flags().StringVar(&contactsEditPhone, "phone", "", "New phone number")
	contactsFavCmd.Flags().BoolVar(&contactsFavOff, "off", false, "Remove the favorite mark instead")
}

// contactsStore is the shared setup for every contacts subcommand.
func contactsStore(cmd *cobra.Command) (*store.Store, context.Context, error) {
	cfg, err := initRuntime()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return st, ctx, nil
}

func runContactsList(cmd *cobra.Command, args []string) error {
	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	contacts, err := st.List(ctx)
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		fmt.Println("No contacts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPHONE\tFAV\tID")
	for _, c := range contacts {
		fav := ""
		if c.Favorite {
			fav = "★"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Phone, fav, c.ID)
	}
	return w.Flush()
}

func runContactsAdd(cmd *cobra.Command, args []string) error {
	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := st.Add(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Added %s (%s) with id %s\n", c.Name, c.Phone, c.ID)
	return nil
}

func runContactsEdit(cmd *cobra.Command, args []string) error {
	if contactsEditName == "" && contactsEditPhone == "" {
		return fmt.Errorf("nothing to change: pass --name and/or --phone")
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
	if contactsEditName != "" {
		c.Name = contactsEditName
	}
	if contactsEditPhone != "" {
		c.Phone = contactsEditPhone
	}
	if err := st.Update(ctx, c); err != nil {
		return err
	}
	fmt.Printf("Updated %s (%s)\n", c.Name, c.Phone)
	return nil
}

func runContactsRm(cmd *cobra.Command, args []string) error {
	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := st.Find(ctx, args[0])
	if err != nil {
		return err
	}
	if err := st.Remove(ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", c.Name)
	return nil
}

func runContactsFav(cmd *cobra.Command, args []string) error {
	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := st.Find(ctx, args[0])
	if err != nil {
		return err
	}
	if err := st.SetFavorite(ctx, c.ID, !contactsFavOff); err != nil {
		return err
	}
	if contactsFavOff {
		fmt.Printf("Unmarked %s\n", c.Name)
	} else {
		fmt.Printf("Marked %s as favorite\n", c.Name)
	}
	return nil
}
