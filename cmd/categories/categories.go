// Package categories handles the category list commands
package categories

import (
	"fmt"

	"github.com/spf13/cobra"

	"avinya/fin-pulse/cmd/root"
	"avinya/fin-pulse/internal/models"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List, add or remove categories",
	Long: `List the categories transactions can be assigned to: the defaults
followed by custom categories. Custom categories can be added and removed;
defaults cannot be removed.`,
	Args: cobra.NoArgs,
	RunE: listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom category",
	Args:  cobra.ExactArgs(1),
	RunE:  addFunc,
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a custom category",
	Args:  cobra.ExactArgs(1),
	RunE:  removeFunc,
}

func init() {
	Cmd.AddCommand(addCmd, removeCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	for _, name := range c.GetCategorizer().Categories() {
		marker := " "
		if !models.IsDefaultCategory(name) {
			marker = "*"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name); err != nil {
			return err
		}
	}
	return nil
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return c.GetCategorizer().AddCustomCategory(args[0])
}

func removeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	return c.GetCategorizer().RemoveCustomCategory(args[0])
}
