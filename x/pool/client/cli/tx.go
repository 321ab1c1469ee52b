package cli

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/proof-of-capital/poc-chain/x/pool/types"
)

// GetTxCmd returns the transaction commands for the pool module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "pool",
		Short:                      "Pool module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdDeposit(),
		CmdFinalizeFundraising(),
		CmdRecordExchange(),
		CmdFinalizeExchange(),
		CmdConfirmLPProvisioned(),
		CmdCancelFundraising(),
		CmdWithdrawCancelled(),
		CmdRequestExit(),
		CmdCancelExit(),
		CmdProcessExitQueue(),
		CmdDistributeProfit(),
		CmdClaimRewards(),
	)

	return cmd
}

// CmdDeposit returns the command to deposit into fundraising
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [amount]",
		Short: "Deposit main collateral during fundraising",
		Long: `Deposit main collateral into the pool during the fundraising stage. The
signer must own a registered vault with remaining deposit capacity.

Example:
  pocd tx pool deposit 100000 --from alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgDeposit{
				Depositor: clientCtx.GetFromAddress().String(),
				Amount:    args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdFinalizeFundraising returns the command to close collection
func CmdFinalizeFundraising() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize-fundraising",
		Short: "Close fundraising collection and enter the exchange stage (authority)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgFinalizeFundraising{
				Authority: clientCtx.GetFromAddress().String(),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRecordExchange returns the command to swap collected collateral
func CmdRecordExchange() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record-exchange [router] [swap-type] [amount-in] [min-out]",
		Short: "Swap collected collateral for the reward asset (authority)",
		Args:  cobra.RangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			swapType, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid swap type: %v", err)
			}

			var swapData []byte
			if len(args) == 5 {
				swapData, err = base64.StdEncoding.DecodeString(args[4])
				if err != nil {
					return fmt.Errorf("invalid swap data: %v", err)
				}
			}

			msg := &types.MsgRecordExchange{
				Authority: clientCtx.GetFromAddress().String(),
				Router:    args[0],
				SwapType:  uint32(swapType),
				SwapData:  swapData,
				AmountIn:  args[2],
				MinOut:    args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdFinalizeExchange returns the command to mint shares after the exchange
func CmdFinalizeExchange() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize-exchange",
		Short: "Mint shares from exchanged reward assets (authority)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgFinalizeExchange{
				Authority: clientCtx.GetFromAddress().String(),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdConfirmLPProvisioned returns the command to activate the pool
func CmdConfirmLPProvisioned() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm-lp",
		Short: "Confirm liquidity provisioning and activate the pool (authority)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgConfirmLPProvisioned{
				Authority: clientCtx.GetFromAddress().String(),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCancelFundraising returns the command to cancel a failed fundraise
func CmdCancelFundraising() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-fundraising",
		Short: "Cancel fundraising after a missed deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCancelFundraising{
				Caller: clientCtx.GetFromAddress().String(),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdrawCancelled returns the command to refund a cancelled fundraise
func CmdWithdrawCancelled() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw-cancelled",
		Short: "Withdraw the full deposit from a cancelled fundraise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgWithdrawCancelled{
				Caller: clientCtx.GetFromAddress().String(),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRequestExit returns the command to join the exit queue
func CmdRequestExit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request-exit",
		Short: "Queue the signer's vault for a full exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgRequestExit{
				Caller: clientCtx.GetFromAddress().String(),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCancelExit returns the command to leave the exit queue
func CmdCancelExit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-exit",
		Short: "Remove the signer's vault from the exit queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCancelExit{
				Caller: clientCtx.GetFromAddress().String(),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdProcessExitQueue returns the command to settle funded exit entries
func CmdProcessExitQueue() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process-exit-queue [max-entries]",
		Short: "Settle queued exits against the funded allocation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			var maxEntries uint64
			if len(args) == 1 {
				maxEntries, err = strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid max entries: %v", err)
				}
			}

			msg := &types.MsgProcessExitQueue{
				Caller:     clientCtx.GetFromAddress().String(),
				MaxEntries: uint32(maxEntries),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDistributeProfit returns the command to run the distribution waterfall
func CmdDistributeProfit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute [token] [amount]",
		Short: "Distribute unaccounted profit through the waterfall",
		Long: `Distribute unaccounted balance of a token: royalty first, then the
operator share, then the exit-queue slice, then holder accrual. Omitting
the amount distributes the full unaccounted balance.

Examples:
  pocd tx pool distribute upoc --from operator
  pocd tx pool distribute uusdc 50000 --from operator`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			amount := ""
			if len(args) == 2 {
				amount = args[1]
			}

			msg := &types.MsgDistributeProfit{
				Caller: clientCtx.GetFromAddress().String(),
				Token:  args[0],
				Amount: amount,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdClaimRewards returns the command to claim accrued rewards
func CmdClaimRewards() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim [token]",
		Short: "Claim the signer's accrued holder rewards in a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgClaimRewards{
				Caller: clientCtx.GetFromAddress().String(),
				Token:  args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
