package cmd

import (
	"fmt"

	"github.com/XY-Finance/callforge/internal/builder"
	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
)

var (
	addPath string
	addPick bool
)

var addCmd = &cobra.Command{
	Use:   "add [name] [type]",
	Short: "Add a parameter, tuple field or array item",
	Long: `Add to the call under construction.

Without --path, appends a top-level parameter (name defaults to a
positional placeholder, type to the configured default). With --path,
appends a named field to the tuple at that path — or, when the path
addresses an array, a new item.

Types are ABI tags: address, uint256, int8, bool, string, bytes, bytes32,
tuple, and any of those with [] suffixes (tuple[], uint8[][], …).

Examples:
  callforge add to address
  callforge add amount uint256
  callforge add order tuple
  callforge add maker address --path 1a2b
  callforge add --path 9f3e              # array at 9f3e: appends an item
  callforge add fee --pick               # choose the type interactively`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		call, store, err := loadSession()
		if err != nil {
			return err
		}

		var name, typ string
		if len(args) > 0 {
			name = args[0]
		}
		if len(args) > 1 {
			typ = args[1]
		}

		if addPick {
			typ, err = pickType()
			if err != nil {
				return err
			}
			if typ == "" {
				return nil // user cancelled
			}
		}

		var id string
		if addPath == "" {
			if typ == "" {
				typ = cfg.DefaultType
			}
			id, err = call.AddParameter(name, typ)
		} else {
			var path []string
			path, err = parsePath(call, addPath)
			if err != nil {
				return err
			}
			node, _ := call.NodeAt(path)
			if builder.IsArray(node.Type) {
				if name != "" || typ != "" {
					return fmt.Errorf("array items take no name or type — they follow the element template (%s)", node.Children[0].Type)
				}
				id, err = call.AddItem(path)
			} else {
				id, err = call.AddComponent(path, name, typ)
			}
		}
		if err != nil {
			return err
		}
		if id == "" {
			fmt.Println(ui.Warn("nothing added — target is not a composite node"))
			return nil
		}

		if err := store.Save(call); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		fmt.Println(ui.Success("added " + ui.Meta(builder.ShortID(id))))
		return nil
	},
}

// pickType runs the interactive picker over the full type catalogue.
func pickType() (string, error) {
	choices := []ui.TypeChoice{
		{Tag: "tuple", Hint: "composite — add fields with --path afterwards"},
	}
	for _, tag := range builder.LeafTypes() {
		choices = append(choices, ui.TypeChoice{Tag: tag})
		if !builder.IsComposite(tag) {
			choices = append(choices, ui.TypeChoice{Tag: tag + "[]", Hint: "array of " + tag})
		}
	}
	return ui.PickType("Parameter type", choices)
}

func init() {
	addCmd.Flags().StringVar(&addPath, "path", "", "parent node (tuple or array) to add into")
	addCmd.Flags().BoolVar(&addPick, "pick", false, "choose the type from an interactive list")
}
