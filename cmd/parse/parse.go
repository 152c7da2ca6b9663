// Package parse handles the field extraction command
package parse

import (
	"fmt"

	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/common"
	"avinya/fin-pulse/cmd/root"
)

var noGate bool

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Extract amount, party, UPI handle and method from a message",
	Long: `Extract the transaction fields of a message. The transaction gate runs
first unless --no-gate is given.

Example:
  fin-pulse parse "Rahul Sharma sent you Rs 500 via UPI"`,
	Args: cobra.ExactArgs(1),
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().BoolVar(&noGate, "no-gate", false, "Parse even when the message does not look like a transaction")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	text := args[0]

	if !noGate && !c.GetGate().IsLikelyTransaction(text) {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "not a transaction")
		return err
	}

	tx := c.GetParser().Parse(text)
	if tx == nil {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no amount found")
		return err
	}
	return common.PrintYAML(cmd.OutOrStdout(), common.NewTransactionView(*tx))
}
