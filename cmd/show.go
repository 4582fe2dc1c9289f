package cmd

import (
	"fmt"

	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the call under construction",
	Long: `Print the parameter tree with identifiers, entered values and
per-field validation state, plus the canonical signature and selector.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		call, _, err := loadSession()
		if err != nil {
			return err
		}

		errs := call.Complete()
		fmt.Println(ui.RenderCall(call, errs))

		d := call.Describe()
		status := ui.Success("ready to encode")
		if len(errs) > 0 {
			status = ui.Warn(fmt.Sprintf("%d field(s) pending or invalid", len(errs)))
		}
		fmt.Println(ui.KeyValueBlock("Call", [][2]string{
			{"Signature", ui.Val(d.Signature)},
			{"Selector", ui.Hex(d.Selector)},
			{"Status", status},
		}))
		return nil
	},
}
