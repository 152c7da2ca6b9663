// Package check handles the transaction gate command
package check

import (
	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/common"
	"avinya/fin-pulse/cmd/root"
)

// Cmd represents the check command
var Cmd = &cobra.Command{
	Use:   "check <text>",
	Short: "Decide whether a message looks like a transaction",
	Long: `Run the transaction gate on a message and print the verdict together with
the rule that decided it.

Example:
  fin-pulse check "Rs 500 debited from a/c XX1234"`,
	Args: cobra.ExactArgs(1),
	RunE: checkFunc,
}

type verdictView struct {
	Transaction bool   `yaml:"transaction"`
	Rule        string `yaml:"rule"`
	Match       string `yaml:"match,omitempty"`
}

func checkFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	v := c.GetGate().Evaluate(args[0])
	return common.PrintYAML(cmd.OutOrStdout(), verdictView{Transaction: v.Likely, Rule: v.Rule, Match: v.Match})
}
