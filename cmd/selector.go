package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/XY-Finance/callforge/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/sha3"
)

var selectorCmd = &cobra.Command{
	Use:   "selector [signature]",
	Short: "Compute a 4-byte function selector",
	Long: `Compute the keccak-256 based 4-byte selector of a canonical function
signature. Without an argument, the current call's signature is used.

Examples:
  callforge selector "transfer(address,uint256)"   # → 0xa9059cbb
  callforge selector "transfer(address to, uint256 amount)"
  callforge selector`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var sig string
		if len(args) == 1 {
			sig = normalizeSignature(args[0])
			if !strings.Contains(sig, "(") || !strings.HasSuffix(sig, ")") {
				return fmt.Errorf("invalid signature %q — expected format: name(type1,type2)", args[0])
			}
		} else {
			call, _, err := loadSession()
			if err != nil {
				return err
			}
			sig = call.Describe().Signature
		}

		h := sha3.NewLegacyKeccak256()
		h.Write([]byte(sig))
		hash := h.Sum(nil)

		fmt.Println(ui.KeyValueBlock("Function Selector", [][2]string{
			{"Signature", sig},
			{"Selector", ui.Hex("0x" + hex.EncodeToString(hash[:4]))},
			{"Full Hash", ui.Meta("0x" + hex.EncodeToString(hash))},
		}))
		return nil
	},
}

// normalizeSignature removes parameter names, keeping only types:
// "transfer(address to, uint256 amount)" → "transfer(address,uint256)".
func normalizeSignature(sig string) string {
	open := strings.Index(sig, "(")
	if open < 0 || !strings.HasSuffix(sig, ")") {
		return sig
	}
	name := strings.TrimSpace(sig[:open])
	inner := sig[open+1 : len(sig)-1]
	if strings.TrimSpace(inner) == "" {
		return name + "()"
	}
	parts := strings.Split(inner, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		fields := strings.Fields(strings.TrimSpace(p))
		if len(fields) > 0 {
			types = append(types, fields[0])
		}
	}
	return name + "(" + strings.Join(types, ",") + ")"
}
