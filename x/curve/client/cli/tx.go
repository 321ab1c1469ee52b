package cli

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/proof-of-capital/poc-chain/x/curve/types"
)

// GetTxCmd returns the transaction commands for the curve module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "curve",
		Short:                      "Curve module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdSellReward(),
	)

	return cmd
}

// CmdSellReward returns the command to sell reward assets on the curve
func CmdSellReward() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell [amount] [collateral-denom] [router] [swap-type] [min-out]",
		Short: "Sell reward-asset units to the pool at the bonding-curve price",
		Long: `Sell reward-asset units at the current bonding-curve price, settled in a
sellable collateral via the given router.

Example:
  pocd tx curve sell 1000 uusdc venue1 0 950 --from alice`,
		Args: cobra.RangeArgs(5, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			swapType, err := strconv.ParseUint(args[3], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid swap type: %v", err)
			}

			var swapData []byte
			if len(args) == 6 {
				swapData, err = base64.StdEncoding.DecodeString(args[5])
				if err != nil {
					return fmt.Errorf("invalid swap data: %v", err)
				}
			}

			msg := &types.MsgSellReward{
				Seller:          clientCtx.GetFromAddress().String(),
				Amount:          args[0],
				CollateralDenom: args[1],
				Router:          args[2],
				SwapType:        uint32(swapType),
				SwapData:        swapData,
				MinOut:          args[4],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
