package builder

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"
)

// EncodeError is a structured encoding failure: the stage that rejected the
// structure, the path of the offending node when known, and the cause.
// Encoding is a pure projection — an EncodeError never leaves the tree or
// value store mutated.
type EncodeError struct {
	Stage string // "type", "extract" or "pack"
	Path  []string
	Err   error
}

func (e *EncodeError) Error() string {
	if len(e.Path) > 0 {
		short := make([]string, len(e.Path))
		for i, id := range e.Path {
			short[i] = ShortID(id)
		}
		return fmt.Sprintf("encode (%s) at %s: %v", e.Stage, strings.Join(short, "/"), e.Err)
	}
	return fmt.Sprintf("encode (%s): %v", e.Stage, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Description is the read-only display projection of a call.
type Description struct {
	Name      string
	Signature string // canonical signature, tuples parenthesized
	Selector  string // 0x-prefixed 4-byte keccak selector
}

// Describe returns the call's name, canonical signature and selector.
func (c *Call) Describe() Description {
	types := make([]string, len(c.Params))
	for i, p := range c.Params {
		types[i] = typeSignature(p)
	}
	sig := c.Name + "(" + strings.Join(types, ",") + ")"

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return Description{
		Name:      c.Name,
		Signature: sig,
		Selector:  "0x" + hex.EncodeToString(h.Sum(nil)[:4]),
	}
}

// typeSignature renders a node's canonical ABI type, expanding tuples into
// parenthesized component lists: "(address,uint256)[]".
func typeSignature(n *Param) string {
	switch {
	case IsArray(n.Type):
		return typeSignature(n.Children[0]) + arraySuffix
	case IsTuple(n.Type):
		parts := make([]string, len(n.Children))
		for i, f := range n.Children {
			parts[i] = typeSignature(f)
		}
		return "(" + strings.Join(parts, ",") + ")"
	default:
		return n.Type
	}
}

// Extract walks the tree in declaration order and converts the mirrored
// (tree, store) pair into the positional, strongly-typed argument list the
// ABI packer expects: common.Address for addresses, exact-precision integers
// (native widths where go-ethereum demands them, *big.Int otherwise), real
// booleans, byte slices and fixed-size byte arrays, slices for T[] and
// reflection-built structs for tuples. It reads the store, never writes it.
func (c *Call) Extract() ([]any, error) {
	args := make([]any, len(c.Params))
	for i, p := range c.Params {
		t, err := nodeABIType(p)
		if err != nil {
			return nil, &EncodeError{Stage: "type", Path: []string{p.ID}, Err: err}
		}
		v, err := extract(p, c.Values[p.ID], t, []string{p.ID})
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// Encode validates nothing on its own — callers run Complete first for
// friendly per-field errors — but every structural problem still surfaces as
// an EncodeError rather than a bad payload. The result is the 0x-prefixed,
// even-length hex concatenation of the 4-byte selector and the packed
// arguments, ready to be used as the data field of a transaction.
func (c *Call) Encode() (string, error) {
	method, err := c.abiMethod()
	if err != nil {
		return "", err
	}
	args, err := c.Extract()
	if err != nil {
		return "", err
	}
	packed, err := method.Inputs.Pack(args...)
	if err != nil {
		return "", &EncodeError{Stage: "pack", Err: err}
	}
	return hexutil.Encode(append(method.ID, packed...)), nil
}

// abiMethod synthesizes the minimal go-ethereum interface descriptor for the
// call: its name plus one abi.Argument per top-level parameter, with nested
// component shapes for composites.
func (c *Call) abiMethod() (abi.Method, error) {
	inputs := make(abi.Arguments, len(c.Params))
	for i, p := range c.Params {
		t, err := nodeABIType(p)
		if err != nil {
			return abi.Method{}, &EncodeError{Stage: "type", Path: []string{p.ID}, Err: err}
		}
		inputs[i] = abi.Argument{Name: p.Name, Type: t}
	}
	return abi.NewMethod(c.Name, c.Name, abi.Function, "", false, false, inputs, nil), nil
}

// nodeABIType builds the go-ethereum type for a node, descending through
// array templates to collect tuple component shapes.
func nodeABIType(n *Param) (abi.Type, error) {
	return abi.NewType(n.Type, "", components(n))
}

// components produces the ArgumentMarshaling list for the tuple at the base
// of n's type (descending through array templates), or nil for leaves.
func components(n *Param) []abi.ArgumentMarshaling {
	base := n
	for IsArray(base.Type) {
		base = base.Children[0]
	}
	if !IsTuple(base.Type) {
		return nil
	}
	out := make([]abi.ArgumentMarshaling, len(base.Children))
	for i, f := range base.Children {
		out[i] = abi.ArgumentMarshaling{
			Name:       f.Name,
			Type:       f.Type,
			Components: components(f),
		}
	}
	return out
}

// extract converts one node occurrence into the Go value matching t.
func extract(n *Param, cell *Value, t abi.Type, path []string) (any, error) {
	switch t.T {
	case abi.TupleTy:
		// go-ethereum packs tuples from struct values; build one through the
		// reflect type the abi package itself derived for t.
		st := reflect.New(t.GetType()).Elem()
		for i, f := range n.Children {
			v, err := extract(f, cell.peekField(f.Name), *t.TupleElems[i], append(path, f.ID))
			if err != nil {
				return nil, err
			}
			st.Field(i).Set(reflect.ValueOf(v))
		}
		return st.Interface(), nil

	case abi.SliceTy:
		tmpl := n.Children[0]
		var items []*Item
		if cell != nil {
			items = cell.Items
		}
		slice := reflect.MakeSlice(t.GetType(), len(items), len(items))
		for i, it := range items {
			v, err := extract(tmpl, it.Value, *t.Elem, append(path, it.ID))
			if err != nil {
				return nil, err
			}
			slice.Index(i).Set(reflect.ValueOf(v))
		}
		return slice.Interface(), nil
	}

	raw := ""
	if cell != nil {
		raw = cell.Raw
	}
	if raw == "" {
		return nil, &EncodeError{Stage: "extract", Path: path,
			Err: fmt.Errorf("required %s value missing", n.Type)}
	}

	switch t.T {
	case abi.AddressTy:
		if reason := checkLeaf("address", raw); reason != "" {
			return nil, &EncodeError{Stage: "extract", Path: path, Err: fmt.Errorf("%s", reason)}
		}
		return common.HexToAddress(raw), nil

	case abi.UintTy, abi.IntTy:
		// Range-check before converting: native-width truncation and
		// big.Int.Uint64 on negatives would silently corrupt the payload.
		if reason := checkLeaf(n.Type, raw); reason != "" {
			return nil, &EncodeError{Stage: "extract", Path: path, Err: fmt.Errorf("%s", reason)}
		}
		v, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, &EncodeError{Stage: "extract", Path: path,
				Err: fmt.Errorf("invalid integer %q", raw)}
		}
		return integerValue(v, t.Size, t.T == abi.IntTy), nil

	case abi.BoolTy:
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, &EncodeError{Stage: "extract", Path: path,
			Err: fmt.Errorf("invalid bool %q", raw)}

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, &EncodeError{Stage: "extract", Path: path, Err: err}
		}
		return b, nil

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, &EncodeError{Stage: "extract", Path: path, Err: err}
		}
		if len(b) != t.Size {
			return nil, &EncodeError{Stage: "extract", Path: path,
				Err: fmt.Errorf("need exactly %d bytes, got %d", t.Size, len(b))}
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil
	}

	return nil, &EncodeError{Stage: "extract", Path: path,
		Err: fmt.Errorf("unsupported ABI type %s", t.String())}
}

// integerValue converts an exact-precision integer into the Go value
// go-ethereum's packer expects for the given bit size: native ints for
// 8/16/32/64, *big.Int for every other width. Precision is never routed
// through floats.
func integerValue(v *big.Int, size int, signed bool) any {
	if signed {
		switch size {
		case 8:
			return int8(v.Int64())
		case 16:
			return int16(v.Int64())
		case 32:
			return int32(v.Int64())
		case 64:
			return v.Int64()
		}
		return v
	}
	switch size {
	case 8:
		return uint8(v.Uint64())
	case 16:
		return uint16(v.Uint64())
	case 32:
		return uint32(v.Uint64())
	case 64:
		return v.Uint64()
	}
	return v
}
