package cmd

import (
	"fmt"

	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
)

var (
	updateName string
	updateType string
)

var updateCmd = &cobra.Command{
	Use:   "update <path>",
	Short: "Rename or retype a node",
	Long: `Rename and/or retype the node at the given path.

Renaming a tuple field keeps its entered value. Changing a type resets the
node's value to the new type's default — the old value may be meaningless
under the new type. Retyping one array type to another keeps the item
count but resets every item's value.

Examples:
  callforge update 1a2b --name recipient
  callforge update 1a2b --type uint128
  callforge update 1a2b/3c4d --name taker --type address`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if updateName == "" && updateType == "" {
			return fmt.Errorf("nothing to do — pass --name and/or --type")
		}

		call, store, err := loadSession()
		if err != nil {
			return err
		}

		path, err := parsePath(call, args[0])
		if err != nil {
			return err
		}

		if err := call.UpdateComponent(path, updateName, updateType); err != nil {
			return err
		}
		if err := store.Save(call); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		fmt.Println(ui.Success("updated " + displayPath(path)))
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "new name")
	updateCmd.Flags().StringVar(&updateType, "type", "", "new ABI type (resets the value)")
}
