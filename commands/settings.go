package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Theme values persisted under the "theme" settings key.
var validThemes = map[string]bool{
	"system": true,
	"light":  true,
	"dark":   true,
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write persisted app settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting value",
	Long: `Persists a setting in the local database. The "theme" key accepts
system, light, or dark.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	value, err := st.GetSetting(ctx, args[0])
	if err != nil {
		return err
	}
	if value == "" {
		if args[0] == "theme" {
			value = "system"
		} else {
			fmt.Printf("%s is not set\n", args[0])
			return nil
		}
	}
	fmt.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if key == "theme" && !validThemes[value] {
		return fmt.Errorf("invalid theme %q: expected system, light, or dark", value)
	}

	st, ctx, err := contactsStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SetSetting(ctx, key, value); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}
