package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"callscope/internal/provider/dialer"
)

var dialCmd = &cobra.Command{
	Use:   "dial <number|contact>",
	Short: "Place a call",
	Long: `Hands the number to the configured dial command (adb by default).
Contacts may be dialed by name or id; raw numbers are cleaned to digits
and an optional leading + before dialing.`,
	Args: cobra.ExactArgs(1),
	RunE: runDial,
}

func init() {
	rootCmd.AddCommand(dialCmd)
}

func runDial(cmd *cobra.Command, args []string) error {
	cfg, err := initRuntime()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	name, number, err := resolveTarget(ctx, st, args[0])
	if err != nil {
		return err
	}

	d := dialer.NewExecDialer(cfg.DialerCommand)
	if err := d.PlaceCall(number); err != nil {
		return err
	}

	if name != "" {
		fmt.Printf("Calling %s (%s)...\n", name, dialer.CleanNumber(number))
	} else {
		fmt.Printf("Calling %s...\n", dialer.CleanNumber(number))
	}
	return nil
}
