package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the vault module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "vault",
		Short:                      "Querying commands for the vault module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryVault(),
		CmdQueryVaults(),
		CmdQueryVotingPower(),
	)

	return cmd
}

// CmdQueryVault returns the command to query a vault by ID
func CmdQueryVault() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [vault-id]",
		Short: "Query a vault by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Vault query for ID: %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryVaults returns the command to list all vaults
func CmdQueryVaults() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered vaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Vault listing requires running node connection")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryVotingPower returns the command to query effective voting power
func CmdQueryVotingPower() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voting-power [vault-id]",
		Short: "Query a vault's effective voting power including delegations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Voting power query for vault %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
