package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/XY-Finance/callforge/internal/builder"
	"github.com/XY-Finance/callforge/internal/session"
	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Save and load call templates",
	Long: `Templates capture a call's shape and values as a JSON document so
common patterns (an ERC-20 transfer, a governance proposal) can be
re-imported later. Imports always stamp fresh identifiers — identifiers in
the file are ignored.`,
}

var templateLoadForce bool

var templateLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Start a call from a template file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.TemplatePath(args[0])
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}

		var tpl builder.Template
		if err := json.Unmarshal(data, &tpl); err != nil {
			return fmt.Errorf("parsing template: %w", err)
		}

		call, err := builder.LoadTemplate(tpl)
		if err != nil {
			return fmt.Errorf("importing template: %w", err)
		}

		store := session.NewStore(cfg.Dir())
		if store.Exists() && !templateLoadForce {
			return fmt.Errorf("a call is already in progress — `callforge discard` first or pass --force")
		}
		if err := store.Save(call); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}

		fmt.Println(ui.Success("loaded " + ui.Val(call.Describe().Signature)))
		return nil
	},
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <file>",
	Short: "Save the current call as a template file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		call, _, err := loadSession()
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(call.ExportTemplate(), "", "  ")
		if err != nil {
			return err
		}

		path := cfg.TemplatePath(args[0])
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return fmt.Errorf("writing template: %w", err)
		}
		fmt.Println(ui.Success("saved " + path))
		return nil
	},
}

func init() {
	templateLoadCmd.Flags().BoolVar(&templateLoadForce, "force", false, "replace any call already in progress")
	templateCmd.AddCommand(templateLoadCmd, templateSaveCmd)
}
