package builder

// Value is the current contents of one node occurrence. Exactly one of the
// three shapes is meaningful, depending on the node's type: Raw for leaves,
// Fields for tuples (keyed by field name), Items for arrays. A zero Value is
// the canonical default for every type: empty text, no fields entered, an
// empty item list.
type Value struct {
	Raw    string            `json:"raw,omitempty"`
	Fields map[string]*Value `json:"fields,omitempty"`
	Items  []*Item           `json:"items,omitempty"`
}

// Item is one concrete element of an array value. Items live only in the
// value store — the shape tree holds a single element template shared by all
// of them. Each item has its own identifier, distinct from every other
// identifier ever issued for the tree.
type Item struct {
	ID    string `json:"id"`
	Value *Value `json:"value"`
}

// field returns the cell for a tuple field, materializing an explicit empty
// cell on first access. Mutation paths only — read paths use peekField so
// that projections like Validate and Encode never touch the store.
func (v *Value) field(name string) *Value {
	if v == nil {
		return nil
	}
	if v.Fields == nil {
		v.Fields = make(map[string]*Value)
	}
	if v.Fields[name] == nil {
		v.Fields[name] = &Value{}
	}
	return v.Fields[name]
}

// peekField returns the cell for a tuple field without creating it.
// A nil result means "not yet entered".
func (v *Value) peekField(name string) *Value {
	if v == nil {
		return nil
	}
	return v.Fields[name]
}

// reset restores the cell to the canonical default, discarding raw text,
// field entries and array items alike.
func (v *Value) reset() {
	if v == nil {
		return
	}
	*v = Value{}
}

// resetItems keeps the item list but resets every item's value. Used when an
// array is retyped to another array type: the element count the user built
// survives, the values do not.
func (v *Value) resetItems() {
	if v == nil {
		return
	}
	v.Raw = ""
	v.Fields = nil
	for _, it := range v.Items {
		it.Value = &Value{}
	}
}
