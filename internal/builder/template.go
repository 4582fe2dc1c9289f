package builder

import (
	"fmt"
	"strings"
)

// Template is an externally supplied shape+values pair used to pre-populate
// common call patterns. Templates carry no identifiers: LoadTemplate stamps
// brand-new ones throughout, so an imported template can never collide with
// identifiers already issued for another tree.
type Template struct {
	Name   string          `json:"name"`
	Params []TemplateParam `json:"params"`
}

// TemplateParam is one parameter of a template. Components describe tuple
// fields (and, for array-of-tuple types, the element's fields). Value is the
// nested value document: a string for leaves, an object keyed by field name
// for tuples, a list for arrays.
type TemplateParam struct {
	Name       string          `json:"name,omitempty"`
	Type       string          `json:"type"`
	Components []TemplateParam `json:"components,omitempty"`
	Value      any             `json:"value,omitempty"`
}

// LoadTemplate builds a fresh call from a template. Every node and array
// item receives a newly generated identifier regardless of anything embedded
// in the source document.
func LoadTemplate(t Template) (*Call, error) {
	if t.Name != "" && !ValidIdentifier(t.Name) {
		return nil, fmt.Errorf("template function name %q is not a valid identifier", t.Name)
	}
	c := NewCall(t.Name)
	for i, tp := range t.Params {
		p, err := templateNode(tp)
		if err != nil {
			return nil, fmt.Errorf("param %d (%s): %w", i+1, tp.Name, err)
		}
		if p.Name == "" {
			p.Name = defaultName("param", len(c.Params)+1)
		}
		c.Params = append(c.Params, p)
		cell := &Value{}
		if err := importValue(p, cell, tp.Value); err != nil {
			return nil, fmt.Errorf("param %d (%s): %w", i+1, p.Name, err)
		}
		c.Values[p.ID] = cell
	}
	return c, nil
}

// templateNode builds the shape subtree for one template parameter,
// attaching tuple components at the base of the type (descending through
// array templates for types like tuple[]).
func templateNode(tp TemplateParam) (*Param, error) {
	norm, err := checkType(tp.Type)
	if err != nil {
		return nil, err
	}
	p := newParam(tp.Name, norm)
	base := p
	for IsArray(base.Type) {
		base = base.Children[0]
	}
	if IsTuple(base.Type) {
		for i, comp := range tp.Components {
			f, err := templateNode(comp)
			if err != nil {
				return nil, err
			}
			if f.Name == "" {
				f.Name = defaultName("field", i+1)
			}
			base.Children = append(base.Children, f)
		}
	} else if len(tp.Components) > 0 {
		return nil, fmt.Errorf("type %s does not take components", norm)
	}
	return p, nil
}

// importValue fills cell from a nested template value document.
func importValue(n *Param, cell *Value, v any) error {
	if v == nil {
		return nil
	}
	switch {
	case IsArray(n.Type):
		list, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s value must be a list", n.Type)
		}
		tmpl := n.Children[0]
		for _, elem := range list {
			it := &Item{ID: newID(), Value: &Value{}}
			if err := importValue(tmpl, it.Value, elem); err != nil {
				return err
			}
			cell.Items = append(cell.Items, it)
		}
	case IsTuple(n.Type):
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("tuple value must be an object keyed by field name")
		}
		for _, f := range n.Children {
			fv, ok := m[f.Name]
			if !ok {
				continue
			}
			if err := importValue(f, cell.field(f.Name), fv); err != nil {
				return err
			}
		}
	default:
		raw, err := leafText(v)
		if err != nil {
			return fmt.Errorf("field %s: %w", n.Name, err)
		}
		if n.Type == "bool" {
			// Same normalization as SetValue.
			if l := strings.ToLower(strings.TrimSpace(raw)); l == "true" || l == "false" {
				raw = l
			}
		}
		cell.Raw = raw
	}
	return nil
}

// leafText renders a JSON scalar as the raw text a leaf cell stores.
// Numbers are rejected: JSON decoding routes them through float64, which
// loses precision above 2^53 — templates must quote numeric values.
func leafText(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case bool:
		if s {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("leaf value must be a string (quote numbers to preserve precision)")
	}
}

// ExportTemplate is the inverse projection: the current shape and values as
// a template document, with all identifiers stripped.
func (c *Call) ExportTemplate() Template {
	t := Template{Name: c.Name}
	for _, p := range c.Params {
		t.Params = append(t.Params, exportParam(p, c.Values[p.ID]))
	}
	return t
}

func exportParam(n *Param, cell *Value) TemplateParam {
	tp := TemplateParam{Name: n.Name, Type: n.Type}
	base := n
	for IsArray(base.Type) {
		base = base.Children[0]
	}
	if IsTuple(base.Type) {
		for _, f := range base.Children {
			tp.Components = append(tp.Components, exportShape(f))
		}
	}
	tp.Value = exportValue(n, cell)
	return tp
}

// exportShape renders shape only (no value) — used for tuple components,
// whose values live in the enclosing value document.
func exportShape(n *Param) TemplateParam {
	tp := TemplateParam{Name: n.Name, Type: n.Type}
	base := n
	for IsArray(base.Type) {
		base = base.Children[0]
	}
	if IsTuple(base.Type) {
		for _, f := range base.Children {
			tp.Components = append(tp.Components, exportShape(f))
		}
	}
	return tp
}

func exportValue(n *Param, cell *Value) any {
	if cell == nil {
		return nil
	}
	switch {
	case IsArray(n.Type):
		if len(cell.Items) == 0 {
			return nil
		}
		tmpl := n.Children[0]
		out := make([]any, 0, len(cell.Items))
		for _, it := range cell.Items {
			out = append(out, exportValue(tmpl, it.Value))
		}
		return out
	case IsTuple(n.Type):
		if len(cell.Fields) == 0 {
			return nil
		}
		out := make(map[string]any, len(n.Children))
		for _, f := range n.Children {
			if v := exportValue(f, cell.peekField(f.Name)); v != nil {
				out[f.Name] = v
			}
		}
		return out
	default:
		if cell.Raw == "" {
			return nil
		}
		return cell.Raw
	}
}
