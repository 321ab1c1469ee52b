package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the pool module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "pool",
		Short:                      "Querying commands for the pool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryPool(),
		CmdQueryExitQueue(),
		CmdQueryPendingRewards(),
		CmdQueryUnaccounted(),
		CmdQueryDistributions(),
	)

	return cmd
}

// CmdQueryPool returns the command to query the pool ledger state
func CmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Query the pool stage, totals, and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Pool state query requires running node connection")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryExitQueue returns the command to list queued exits
func CmdQueryExitQueue() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exit-queue",
		Short: "List queued exit entries in arrival order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Exit queue query requires running node connection")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPendingRewards returns the command to query accrued rewards
func CmdQueryPendingRewards() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending-rewards [vault-id] [token]",
		Short: "Query a vault's unclaimed accrued rewards in a token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Pending rewards query for vault %s in %s requires running node connection\n", args[0], args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryUnaccounted returns the command to query distributable balance
func CmdQueryUnaccounted() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unaccounted [token]",
		Short: "Query the distributable (unaccounted) balance of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Unaccounted balance query for %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryDistributions returns the command to list distribution records
func CmdQueryDistributions() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distributions",
		Short: "List the profit distribution audit trail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Distribution records query requires running node connection")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
