package main

import (
	"fmt"

	"github.com/akeren/creatorchain/domain/waitlist"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <email>",
		Short: "Check an email against the waitlist rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !waitlist.ValidateEmail(args[0]) {
				return fmt.Errorf("%q is not a valid email", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q is valid\n", args[0])
			return nil
		},
	}
}
