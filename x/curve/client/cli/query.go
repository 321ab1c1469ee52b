package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the curve module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "curve",
		Short:                      "Querying commands for the curve module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryOrderbook(),
		CmdQueryQuote(),
	)

	return cmd
}

// CmdQueryOrderbook returns the command to query the curve state
func CmdQueryOrderbook() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Query the bonding-curve level, price, and remaining volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Curve state query requires running node connection")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryQuote returns the command to quote a sale before submitting it
func CmdQueryQuote() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote [amount]",
		Short: "Quote proceeds for selling an amount at the current curve position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Quote for %s units requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
