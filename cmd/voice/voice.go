// Package voice handles the spoken expense command
package voice

import (
	"fmt"

	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/common"
	"avinya/fin-pulse/cmd/root"
)

// Cmd represents the voice command
var Cmd = &cobra.Command{
	Use:   "voice <utterance>",
	Short: "Interpret a spoken expense",
	Long: `Interpret the transcript of a spoken expense such as "spent two hundred
on lunch at Subway" into amount, description, category and merchant.

Example:
  fin-pulse voice "paid 2k for groceries"`,
	Args: cobra.ExactArgs(1),
	RunE: voiceFunc,
}

func voiceFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	v := c.GetVoice().Parse(args[0])
	if v == nil {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no amount found")
		return err
	}
	return common.PrintYAML(cmd.OutOrStdout(), common.NewVoiceView(*v))
}
