package builder

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultType is the type assigned to a parameter added without one.
const DefaultType = "address"

// arraySuffix marks an array type tag: "uint256[]", "tuple[]", "bytes32[][]".
const arraySuffix = "[]"

// NormalizeType canonicalizes a type tag: "uint" becomes "uint256", "int"
// becomes "int256", recursively through array suffixes. Unknown tags are
// returned unchanged — use ValidType to reject them.
func NormalizeType(tag string) string {
	tag = strings.TrimSpace(tag)
	if IsArray(tag) {
		return NormalizeType(Elem(tag)) + arraySuffix
	}
	switch tag {
	case "uint":
		return "uint256"
	case "int":
		return "int256"
	}
	return tag
}

// ValidType reports whether tag is in the closed type catalogue:
// address, uintN/intN (N = 8..256, multiple of 8), bool, string, bytes,
// bytesN (N = 1..32), tuple, and T[] for any valid T.
func ValidType(tag string) bool {
	if IsArray(tag) {
		return ValidType(Elem(tag))
	}
	switch tag {
	case "address", "bool", "string", "bytes", "tuple":
		return true
	}
	if w, ok := intWidth(tag); ok {
		return w >= 8 && w <= 256 && w%8 == 0
	}
	if w, ok := bytesWidth(tag); ok {
		return w >= 1 && w <= 32
	}
	return false
}

// IsArray reports whether tag denotes an array type.
func IsArray(tag string) bool { return strings.HasSuffix(tag, arraySuffix) }

// Elem strips one array suffix: "address[]" → "address", "tuple[][]" → "tuple[]".
func Elem(tag string) string { return strings.TrimSuffix(tag, arraySuffix) }

// IsTuple reports whether tag is the tuple type.
func IsTuple(tag string) bool { return tag == "tuple" }

// IsComposite reports whether tag owns child descriptors (tuple or array).
func IsComposite(tag string) bool { return IsTuple(tag) || IsArray(tag) }

// intWidth parses "uintN"/"intN" tags. ok is false for anything else.
func intWidth(tag string) (width int, ok bool) {
	s, found := strings.CutPrefix(tag, "uint")
	if !found {
		s, found = strings.CutPrefix(tag, "int")
	}
	if !found || s == "" {
		return 0, false
	}
	w, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return w, true
}

// bytesWidth parses "bytesN" tags (fixed-width byte strings).
func bytesWidth(tag string) (width int, ok bool) {
	s, found := strings.CutPrefix(tag, "bytes")
	if !found || s == "" {
		return 0, false
	}
	w, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return w, true
}

// LeafTypes returns the catalogue of leaf tags, most common first. Used by
// the interactive type picker.
func LeafTypes() []string {
	out := []string{"address", "uint256", "bool", "string", "bytes", "bytes32"}
	for w := 8; w <= 256; w += 8 {
		if w != 256 {
			out = append(out, "uint"+strconv.Itoa(w))
		}
	}
	for w := 8; w <= 256; w += 8 {
		out = append(out, "int"+strconv.Itoa(w))
	}
	for w := 1; w <= 32; w++ {
		if w != 32 {
			out = append(out, "bytes"+strconv.Itoa(w))
		}
	}
	return out
}

// checkType normalizes and validates a user-supplied tag in one step.
func checkType(tag string) (string, error) {
	norm := NormalizeType(tag)
	if !ValidType(norm) {
		return "", fmt.Errorf("unknown ABI type %q", tag)
	}
	return norm, nil
}
