package builder

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Param is one node of the parameter tree. The identifier is opaque, unique
// for the lifetime of the tree and never reused, even after deletion. Name
// is required for top-level parameters and tuple fields and absent for array
// element templates. Children is present iff the type is composite: exactly
// one unnamed element template for arrays, N named fields for tuples.
type Param struct {
	ID       string   `json:"id"`
	Name     string   `json:"name,omitempty"`
	Type     string   `json:"type"`
	Children []*Param `json:"components,omitempty"`

	// Auto marks a node created by a fully defaulted add. The double-submit
	// guard only ever absorbs into such a node; a rename or retype clears it.
	Auto bool `json:"auto,omitempty"`
}

// Call is a function call under construction: a name plus an ordered forest
// of parameters, mirrored by a value store keyed by top-level identifier.
// Parameter order is ABI positional order and is preserved across every
// mutation. Values for nested nodes are resolved through their parent cells,
// so shape edits never invalidate unrelated value entries.
type Call struct {
	Name   string            `json:"name"`
	Params []*Param          `json:"params"`
	Values map[string]*Value `json:"values"`
}

// NewCall creates an empty call with the given function name.
func NewCall(name string) *Call {
	return &Call{Name: name, Values: make(map[string]*Value)}
}

func newID() string { return uuid.NewString() }

// newParam creates a node with a fresh identifier. Array types get their
// element template stamped immediately so type and children always agree.
func newParam(name, typ string) *Param {
	p := &Param{ID: newID(), Name: name, Type: typ}
	if IsArray(typ) {
		p.Children = []*Param{newParam("", Elem(typ))}
	}
	return p
}

// defaultName is the positional placeholder used when a parameter or tuple
// field is added without a name.
func defaultName(prefix string, position int) string {
	return fmt.Sprintf("%s%d", prefix, position)
}

// isDefaulted reports whether both arguments to an add were left at their
// defaults ("" name, "" or address type). Such adds are candidates for the
// duplicate double-submit guard.
func isDefaulted(name, typ string) bool {
	return name == "" && (typ == "" || NormalizeType(typ) == DefaultType)
}

// AddParameter appends a new top-level parameter and returns its identifier.
// An empty name defaults to a positional placeholder ("param1", "param2", …)
// and an empty type defaults to address. A fully defaulted add immediately
// following another fully defaulted add is absorbed as a no-op and returns
// the previous parameter's identifier — this guards against duplicate
// UI-originated double-submits.
func (c *Call) AddParameter(name, typ string) (string, error) {
	defaulted := isDefaulted(name, typ)
	if typ == "" {
		typ = DefaultType
	}
	norm, err := checkType(typ)
	if err != nil {
		return "", err
	}
	if defaulted {
		if last := c.lastParam(); last != nil && last.Auto {
			return last.ID, nil
		}
	}
	if name == "" {
		name = defaultName("param", len(c.Params)+1)
	}
	p := newParam(name, norm)
	p.Auto = defaulted
	c.Params = append(c.Params, p)
	if c.Values == nil {
		c.Values = make(map[string]*Value)
	}
	c.Values[p.ID] = &Value{}
	return p.ID, nil
}

func (c *Call) lastParam() *Param {
	if len(c.Params) == 0 {
		return nil
	}
	return c.Params[len(c.Params)-1]
}

// AddComponent appends a named field to the tuple located by path and
// returns the new field's identifier. It is a silent no-op when the path
// does not resolve, when the target is not a tuple, or when a field with
// identical name and type already exists — in the duplicate case the
// existing field's identifier is returned.
func (c *Call) AddComponent(path []string, name, typ string) (string, error) {
	if typ == "" {
		typ = DefaultType
	}
	norm, err := checkType(typ)
	if err != nil {
		return "", err
	}
	r, ok := c.resolve(path)
	if !ok || !IsTuple(r.node.Type) {
		return "", nil
	}
	if name == "" {
		name = defaultName("field", len(r.node.Children)+1)
	}
	for _, ch := range r.node.Children {
		if ch.Name == name && ch.Type == norm {
			return ch.ID, nil
		}
	}
	f := newParam(name, norm)
	r.node.Children = append(r.node.Children, f)
	return f.ID, nil
}

// AddItem appends a concrete item to the array located by path and returns
// the item's fresh identifier. The item starts at the element type's
// canonical default. Silent no-op ("" identifier) when the path does not
// resolve to an array occurrence.
func (c *Call) AddItem(path []string) (string, error) {
	r, ok := c.resolve(path)
	if !ok || !IsArray(r.node.Type) || r.cell == nil {
		return "", nil
	}
	it := &Item{ID: newID(), Value: &Value{}}
	r.cell.Items = append(r.cell.Items, it)
	return it.ID, nil
}

// RemoveComponent removes the node or array item located by path. No-op if
// the path does not resolve. Removing a top-level parameter drops it from
// positional order together with its value store entry; removing a nested
// component leaves sibling order intact and lets the subtree's store entries
// linger as inert orphans.
func (c *Call) RemoveComponent(path []string) {
	r, ok := c.resolve(path)
	if !ok {
		return
	}
	switch {
	case r.itemIdx >= 0:
		r.parentCell.Items = append(r.parentCell.Items[:r.itemIdx], r.parentCell.Items[r.itemIdx+1:]...)
	case r.parent == nil:
		for i, p := range c.Params {
			if p.ID == r.node.ID {
				c.Params = append(c.Params[:i], c.Params[i+1:]...)
				delete(c.Values, p.ID)
				return
			}
		}
	case IsArray(r.parent.Type):
		// The element template cannot be removed on its own; retype the
		// array instead.
		return
	default:
		for i, ch := range r.parent.Children {
			if ch.ID == r.node.ID {
				r.parent.Children = append(r.parent.Children[:i], r.parent.Children[i+1:]...)
				return
			}
		}
	}
}

// UpdateComponent renames and/or retypes the node located by path. Empty
// arguments leave the corresponding attribute untouched. A type change
// resets the node's value to the new type's canonical default — a deliberate,
// observable side effect, since the old value may be meaningless under the
// new type. Retyping one array type to another keeps the item count but
// resets every item's value. Renaming a tuple field migrates the stored
// value from the old field name to the new in every occurrence, including
// per-item mappings inside arrays of tuples.
func (c *Call) UpdateComponent(path []string, name, typ string) error {
	r, ok := c.resolve(path)
	if !ok {
		return nil
	}
	if r.parent != nil && IsArray(r.parent.Type) {
		// Element templates are managed through their owning array.
		return nil
	}
	if name != "" && name != r.node.Name {
		c.migrateFieldName(r, r.node.Name, name)
		r.node.Name = name
		r.node.Auto = false
	}
	if typ != "" {
		norm, err := checkType(typ)
		if err != nil {
			return err
		}
		if norm != r.node.Type {
			c.retype(r, norm)
			r.node.Auto = false
		}
	}
	return nil
}

// migrateFieldName re-keys the value mapping of the node's parent tuple so a
// rename does not orphan the stored value. Every occurrence of the parent
// tuple is migrated: its own cell and one cell per array item when the tuple
// sits inside an array.
func (c *Call) migrateFieldName(r ref, oldName, newName string) {
	if r.parent == nil || !IsTuple(r.parent.Type) {
		return
	}
	c.forEachOccurrence(func(n *Param, cell *Value) {
		if n != r.parent || cell == nil || cell.Fields == nil {
			return
		}
		if v, ok := cell.Fields[oldName]; ok {
			delete(cell.Fields, oldName)
			cell.Fields[newName] = v
		}
	})
}

// retype switches the node to a new type, rebuilds the children the new
// type requires and resets the value at every occurrence.
func (c *Call) retype(r ref, norm string) {
	bothArrays := IsArray(r.node.Type) && IsArray(norm)
	r.node.Type = norm
	if IsArray(norm) {
		r.node.Children = []*Param{newParam("", Elem(norm))}
	} else {
		// Tuples start with zero fields; leaves carry none.
		r.node.Children = nil
	}
	c.forEachOccurrence(func(n *Param, cell *Value) {
		if n != r.node || cell == nil {
			return
		}
		if bothArrays {
			cell.resetItems()
		} else {
			cell.reset()
		}
	})
}

// SetValue stores raw text as the current value of the leaf located by path.
// Boolean input is accepted case-insensitively and normalized to lower case.
// No-op if the path does not resolve; an error if the target is composite.
func (c *Call) SetValue(path []string, raw string) error {
	r, ok := c.resolve(path)
	if !ok || r.cell == nil {
		return nil
	}
	if IsComposite(r.node.Type) {
		return fmt.Errorf("cannot set a value on composite type %s — address a leaf", r.node.Type)
	}
	if r.node.Type == "bool" {
		if l := strings.ToLower(strings.TrimSpace(raw)); l == "true" || l == "false" {
			raw = l
		}
	}
	r.cell.Raw = raw
	return nil
}

// --- path resolution ---

// ref pairs a shape node with the value cell backing one occurrence of it.
// For array items the shape node is the shared element template and the cell
// is the item's own. A nil cell means the path addressed pure shape (an
// element template) that has no value of its own.
type ref struct {
	node       *Param
	cell       *Value
	parent     *Param // shape parent, nil for top-level parameters
	parentCell *Value // cell owning this occurrence
	itemIdx    int    // index into parentCell.Items for item refs, else -1
}

// resolve walks an ordered identifier path from a top-level parameter down
// through tuple fields (shape) and array items (store). Any broken link
// yields ok == false, which callers treat as a safe no-op trigger. Missing
// tuple cells along a resolved path are materialized as explicit empties so
// the returned cell is always writable.
func (c *Call) resolve(path []string) (ref, bool) {
	if len(path) == 0 {
		return ref{}, false
	}
	cur := ref{itemIdx: -1}
	for _, p := range c.Params {
		if p.ID == path[0] {
			if c.Values == nil {
				c.Values = make(map[string]*Value)
			}
			if c.Values[p.ID] == nil {
				c.Values[p.ID] = &Value{}
			}
			cur.node = p
			cur.cell = c.Values[p.ID]
			break
		}
	}
	if cur.node == nil {
		return ref{}, false
	}
	for _, seg := range path[1:] {
		next, ok := c.step(cur, seg)
		if !ok {
			return ref{}, false
		}
		cur = next
	}
	return cur, true
}

// step advances one path segment from cur.
func (c *Call) step(cur ref, seg string) (ref, bool) {
	switch {
	case IsTuple(cur.node.Type):
		for _, ch := range cur.node.Children {
			if ch.ID == seg {
				return ref{
					node:       ch,
					cell:       cur.cell.field(ch.Name),
					parent:     cur.node,
					parentCell: cur.cell,
					itemIdx:    -1,
				}, true
			}
		}
	case IsArray(cur.node.Type):
		tmpl := cur.node.Children[0]
		if seg == tmpl.ID {
			// Shape path: the element template itself. No concrete cell.
			return ref{node: tmpl, parent: cur.node, parentCell: cur.cell, itemIdx: -1}, true
		}
		if cur.cell == nil {
			return ref{}, false
		}
		for i, it := range cur.cell.Items {
			if it.ID == seg {
				if it.Value == nil {
					it.Value = &Value{}
				}
				return ref{
					node:       tmpl,
					cell:       it.Value,
					parent:     cur.node,
					parentCell: cur.cell,
					itemIdx:    i,
				}, true
			}
		}
	}
	return ref{}, false
}

// forEachOccurrence visits every (node, cell) occurrence pair reachable from
// the roots: one pair per shape node, plus one pair per array item for the
// element template and everything beneath it. Cells may be nil where no
// value was ever entered. Read-only — never materializes store entries.
func (c *Call) forEachOccurrence(fn func(n *Param, cell *Value)) {
	for _, p := range c.Params {
		walkOccurrence(p, c.Values[p.ID], fn)
	}
}

func walkOccurrence(n *Param, cell *Value, fn func(n *Param, cell *Value)) {
	fn(n, cell)
	switch {
	case IsTuple(n.Type):
		for _, ch := range n.Children {
			walkOccurrence(ch, cell.peekField(ch.Name), fn)
		}
	case IsArray(n.Type):
		tmpl := n.Children[0]
		if cell == nil {
			return
		}
		for _, it := range cell.Items {
			walkOccurrence(tmpl, it.Value, fn)
		}
	}
}

// NodeAt returns the shape node at path. For array item paths the shared
// element template is returned. ok is false when the path does not resolve.
func (c *Call) NodeAt(path []string) (*Param, bool) {
	r, ok := c.resolve(path)
	if !ok {
		return nil, false
	}
	return r.node, true
}

// --- identifier prefix resolution (CLI convenience) ---

// ResolvePrefixes expands a path of identifier prefixes into a path of full
// identifiers, matching at each level against tuple fields, the element
// template and concrete array items. Ambiguous or unmatched prefixes are
// errors; the CLI surfaces them verbatim.
func (c *Call) ResolvePrefixes(prefixes []string) ([]string, error) {
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	var full []string
	var candidates []candidate
	for _, p := range c.Params {
		candidates = append(candidates, candidate{id: p.ID, label: p.Name})
	}
	cur := ref{itemIdx: -1}
	for i, pref := range prefixes {
		id, err := matchPrefix(pref, candidates)
		if err != nil {
			return nil, err
		}
		full = append(full, id)
		if i == 0 {
			r, ok := c.resolve(full[:1])
			if !ok {
				return nil, fmt.Errorf("no parameter matches %q", pref)
			}
			cur = r
		} else {
			next, ok := c.step(cur, id)
			if !ok {
				return nil, fmt.Errorf("path segment %q does not resolve", pref)
			}
			cur = next
		}
		candidates = c.childCandidates(cur)
	}
	return full, nil
}

type candidate struct{ id, label string }

func matchPrefix(pref string, cands []candidate) (string, error) {
	var hits []candidate
	for _, cd := range cands {
		if strings.HasPrefix(cd.id, pref) {
			hits = append(hits, cd)
		}
	}
	switch len(hits) {
	case 1:
		return hits[0].id, nil
	case 0:
		return "", fmt.Errorf("no node matches %q", pref)
	default:
		var ids []string
		for _, h := range hits {
			ids = append(ids, ShortID(h.id))
		}
		return "", fmt.Errorf("ambiguous prefix %q: matches %s", pref, strings.Join(ids, ", "))
	}
}

func (c *Call) childCandidates(r ref) []candidate {
	var out []candidate
	switch {
	case IsTuple(r.node.Type):
		for _, ch := range r.node.Children {
			out = append(out, candidate{id: ch.ID, label: ch.Name})
		}
	case IsArray(r.node.Type):
		out = append(out, candidate{id: r.node.Children[0].ID, label: "element"})
		if r.cell != nil {
			for _, it := range r.cell.Items {
				out = append(out, candidate{id: it.ID})
			}
		}
	}
	return out
}

// ShortID returns the display form of an identifier: its first 8 characters.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
