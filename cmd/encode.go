package cmd

import (
	"fmt"

	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode the completed call into calldata",
	Long: `Validate the whole call and ABI-encode it into the 0x-prefixed
calldata payload: the 4-byte selector followed by the packed arguments.

Use the result as the data field of eth_call / eth_sendTransaction, or
feed it to a multisig or timelock. Encoding never changes the call —
fix any flagged field and encode again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		call, _, err := loadSession()
		if err != nil {
			return err
		}

		if errs := call.Complete(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Println(ui.Err(fmt.Sprintf("%s  %s", displayPath(e.Path), e.Error())))
			}
			return fmt.Errorf("%d field(s) pending or invalid", len(errs))
		}

		data, err := call.Encode()
		if err != nil {
			return fmt.Errorf("encoding failed: %w", err)
		}

		d := call.Describe()
		fmt.Println(ui.KeyValueBlock("Encoded Calldata", [][2]string{
			{"Signature", d.Signature},
			{"Selector", ui.Hex(d.Selector)},
			{"Calldata", ui.Hex(data)},
			{"Bytes", fmt.Sprintf("%d", (len(data)-2)/2)},
		}))
		return nil
	},
}
