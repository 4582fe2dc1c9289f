package builder

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// ValidationError reports one invalid or missing value. Path addresses the
// offending node so a caller can highlight exactly that field; errors are
// never aggregated into one opaque message.
type ValidationError struct {
	Path   []string // identifier path from the top-level parameter
	Label  string   // display name of the node ("amount", "recipient.addr", item index)
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s: %s", e.Label, e.Reason)
	}
	return e.Reason
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s is usable as a function or field name:
// letters, digits and underscore, not leading with a digit.
func ValidIdentifier(s string) bool { return identRe.MatchString(s) }

// Validate checks every entered value against its declared type. Empty
// leaves are skipped — empty means "not yet entered", never invalid. The
// returned slice is nil when nothing is wrong.
func (c *Call) Validate() []*ValidationError {
	return c.check(false)
}

// Complete runs Validate plus whole-tree completeness: a valid function
// name, every reachable leaf entered, and every tuple carrying at least one
// declared field. A call that passes Complete is ready to encode.
func (c *Call) Complete() []*ValidationError {
	errs := c.check(true)
	if !ValidIdentifier(c.Name) {
		errs = append([]*ValidationError{{
			Label:  "function",
			Reason: fmt.Sprintf("%q is not a valid function name", c.Name),
		}}, errs...)
	}
	return errs
}

func (c *Call) check(requireComplete bool) []*ValidationError {
	var errs []*ValidationError
	for _, p := range c.Params {
		errs = append(errs, checkNode(p, c.Values[p.ID], []string{p.ID}, p.Name, requireComplete)...)
	}
	return errs
}

func checkNode(n *Param, cell *Value, path []string, label string, complete bool) []*ValidationError {
	var errs []*ValidationError
	switch {
	case IsTuple(n.Type):
		if len(n.Children) == 0 && complete {
			errs = append(errs, &ValidationError{Path: path, Label: label,
				Reason: "tuple has no fields — add at least one component"})
		}
		for _, f := range n.Children {
			errs = append(errs, checkNode(f, cell.peekField(f.Name),
				append(append([]string{}, path...), f.ID), label+"."+f.Name, complete)...)
		}
	case IsArray(n.Type):
		// An empty array is legal ABI-wise; only entered items are checked.
		if cell == nil {
			return errs
		}
		tmpl := n.Children[0]
		for i, it := range cell.Items {
			errs = append(errs, checkNode(tmpl, it.Value,
				append(append([]string{}, path...), it.ID), fmt.Sprintf("%s[%d]", label, i), complete)...)
		}
	default:
		raw := ""
		if cell != nil {
			raw = cell.Raw
		}
		if raw == "" {
			if complete {
				errs = append(errs, &ValidationError{Path: path, Label: label, Reason: "no value entered"})
			}
			return errs
		}
		if reason := checkLeaf(n.Type, raw); reason != "" {
			errs = append(errs, &ValidationError{Path: path, Label: label, Reason: reason})
		}
	}
	return errs
}

// checkLeaf applies the per-type syntactic rule to a non-empty raw value.
// It returns "" when the value is valid.
func checkLeaf(typ, raw string) string {
	switch {
	case typ == "address":
		if len(raw) != 42 || !strings.HasPrefix(raw, "0x") || !isHex(raw[2:]) {
			return "address must be 0x followed by 40 hex digits"
		}
	case typ == "bool":
		if raw != "true" && raw != "false" {
			return `bool must be "true" or "false"`
		}
	case typ == "string":
		// Any text is a valid ABI string.
	case typ == "bytes":
		if !strings.HasPrefix(raw, "0x") || len(raw)%2 != 0 || !isHex(raw[2:]) {
			return "bytes must be 0x followed by an even number of hex digits"
		}
	default:
		if w, ok := bytesWidth(typ); ok {
			if !strings.HasPrefix(raw, "0x") || len(raw) != 2+2*w || !isHex(raw[2:]) {
				return fmt.Sprintf("%s must be 0x followed by exactly %d hex digits", typ, 2*w)
			}
			return ""
		}
		if w, ok := intWidth(typ); ok {
			return checkInteger(typ, raw, w, strings.HasPrefix(typ, "int"))
		}
		return fmt.Sprintf("unknown type %q", typ)
	}
	return ""
}

func checkInteger(typ, raw string, width int, signed bool) string {
	body := raw
	if signed {
		body = strings.TrimPrefix(body, "-")
	}
	if body == "" || strings.TrimLeft(body, "0123456789") != "" {
		if signed {
			return fmt.Sprintf("%s must be a decimal integer (optional leading -)", typ)
		}
		return fmt.Sprintf("%s must be decimal digits only", typ)
	}
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return fmt.Sprintf("invalid %s value", typ)
	}
	if signed {
		half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
		min := new(big.Int).Neg(half)
		max := new(big.Int).Sub(half, big.NewInt(1))
		if n.Cmp(min) < 0 || n.Cmp(max) > 0 {
			return fmt.Sprintf("value out of range for %s [%s, %s]", typ, min, max)
		}
		return ""
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(width))
	if n.Sign() < 0 || n.Cmp(limit) >= 0 {
		return fmt.Sprintf("value out of range for %s [0, 2^%d)", typ, width)
	}
	return ""
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
