// Package train handles the learning commands
package train

import (
	"fmt"

	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/root"
	"avinya/fin-pulse/internal/direction"
	"avinya/fin-pulse/internal/models"
)

var (
	credit bool
	debit  bool
)

// Cmd represents the train command
var Cmd = &cobra.Command{
	Use:   "train",
	Short: "Teach the engine from a correction",
	Long: `Teach the engine from a user correction. Everything learned is stored in
the knowledge store and used by every later command.`,
}

var confirmCmd = &cobra.Command{
	Use:   "confirm <text>",
	Short: "Confirm that a message is a transaction",
	Long: `Confirm that a message is a transaction. Messages with the same pattern
will pass the gate and get the given direction. Without --credit or --debit
the current direction guess is confirmed.`,
	Args: cobra.ExactArgs(1),
	RunE: confirmFunc,
}

var rejectCmd = &cobra.Command{
	Use:   "reject <text>",
	Short: "Mark a message as not a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  rejectFunc,
}

var upiCmd = &cobra.Command{
	Use:   "upi <handle> <name>",
	Short: "Remember the display name of a UPI handle",
	Args:  cobra.ExactArgs(2),
	RunE:  upiFunc,
}

var categoryCmd = &cobra.Command{
	Use:   "category <description> <category>",
	Short: "Teach the category of a transaction description",
	Args:  cobra.ExactArgs(2),
	RunE:  categoryFunc,
}

var voiceCmd = &cobra.Command{
	Use:   "voice <description> <category>",
	Short: "Teach the category of a spoken expense description",
	Args:  cobra.ExactArgs(2),
	RunE:  voiceFunc,
}

func init() {
	confirmCmd.Flags().BoolVar(&credit, "credit", false, "The message is money in")
	confirmCmd.Flags().BoolVar(&debit, "debit", false, "The message is money out")
	confirmCmd.MarkFlagsMutuallyExclusive("credit", "debit")

	Cmd.AddCommand(confirmCmd, rejectCmd, upiCmd, categoryCmd, voiceCmd)
}

func confirmFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	text := args[0]

	var isCredit bool
	switch {
	case credit:
		isCredit = true
	case debit:
		isCredit = false
	default:
		isCredit = c.GetDirection().IsCredit(text, direction.Guess(text))
	}

	if err := c.GetCoordinator().TrainConfirmedTransaction(text, isCredit); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "confirmed as %s: %s\n", models.DirectionOf(isCredit), c.GetNormalizer().Normalize(text))
	return err
}

func rejectFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	if err := c.GetCoordinator().Dismiss(args[0]); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "rejected: %s\n", c.GetNormalizer().Normalize(args[0]))
	return err
}

func upiFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	if err := c.GetCoordinator().TrainUpiMapping(args[0], args[1]); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
	return err
}

func categoryFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	if err := c.GetCoordinator().TrainCategory(args[0], args[1]); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
	return err
}

func voiceFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	if err := c.GetCoordinator().TrainVoicePattern(args[0], args[1]); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
	return err
}
