package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/proof-of-capital/poc-chain/x/vault/types"
)

// GetTxCmd returns the transaction commands for the vault module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "vault",
		Short:                      "Vault module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreateVault(),
		CmdUpdateOwner(),
		CmdUpdateBackup(),
		CmdUpdateEmergency(),
		CmdDelegate(),
		CmdUndelegate(),
	)

	return cmd
}

// CmdCreateVault returns the command to register a vault
func CmdCreateVault() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [backup-owner] [emergency-owner] [deposit-limit]",
		Short: "Register a new vault with its recovery hierarchy",
		Long: `Register a new vault. The signer becomes the primary owner; the backup
and emergency addresses form the recovery hierarchy. A deposit limit of 0
disables fundraising deposits for the vault.

Example:
  pocd tx vault create cosmos1backup... cosmos1emergency... 1000000 --from alice`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCreateVault{
				Owner:          clientCtx.GetFromAddress().String(),
				BackupOwner:    args[0],
				EmergencyOwner: args[1],
				DepositLimit:   args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUpdateOwner returns the command to rotate the primary owner
func CmdUpdateOwner() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-owner [vault-id] [new-owner]",
		Short: "Install a new primary owner (backup or emergency signer)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			vaultID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid vault id: %v", err)
			}

			msg := &types.MsgUpdateOwner{
				Caller:   clientCtx.GetFromAddress().String(),
				VaultID:  vaultID,
				NewOwner: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUpdateBackup returns the command to rotate the backup owner
func CmdUpdateBackup() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-backup [vault-id] [new-backup]",
		Short: "Install a new backup owner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			vaultID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid vault id: %v", err)
			}

			msg := &types.MsgUpdateBackup{
				Caller:    clientCtx.GetFromAddress().String(),
				VaultID:   vaultID,
				NewBackup: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUpdateEmergency returns the command to rotate the emergency owner
func CmdUpdateEmergency() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-emergency [vault-id] [new-emergency]",
		Short: "Install a new emergency owner (emergency signer only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			vaultID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid vault id: %v", err)
			}

			msg := &types.MsgUpdateEmergency{
				Caller:       clientCtx.GetFromAddress().String(),
				VaultID:      vaultID,
				NewEmergency: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDelegate returns the command to delegate voting power
func CmdDelegate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delegate [vault-id] [delegate-vault-id]",
		Short: "Delegate the vault's voting power to another vault",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			vaultID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid vault id: %v", err)
			}
			delegateID, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid delegate vault id: %v", err)
			}

			msg := &types.MsgDelegate{
				Caller:     clientCtx.GetFromAddress().String(),
				VaultID:    vaultID,
				DelegateID: delegateID,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUndelegate returns the command to revoke a delegation
func CmdUndelegate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undelegate [vault-id]",
		Short: "Revoke the vault's voting delegation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			vaultID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid vault id: %v", err)
			}

			msg := &types.MsgUndelegate{
				Caller:  clientCtx.GetFromAddress().String(),
				VaultID: vaultID,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
