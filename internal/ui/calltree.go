package ui

import (
	"fmt"
	"strings"

	"github.com/XY-Finance/callforge/internal/builder"
)

// RenderCall returns the tree view of a call in progress: one line per node
// and array item showing the short identifier, name, type, entered value and
// validation state. errs marks the offending nodes from a Validate or
// Complete run.
func RenderCall(c *builder.Call, errs []*builder.ValidationError) string {
	bad := make(map[string]string, len(errs))
	for _, e := range errs {
		bad[strings.Join(e.Path, "/")] = e.Reason
	}

	var sb strings.Builder
	d := c.Describe()
	sb.WriteString(StyleTitle.Render(d.Signature) + "\n")

	if len(c.Params) == 0 {
		sb.WriteString(Meta("  (no parameters — add one with `callforge add`)") + "\n")
	}
	for i, p := range c.Params {
		renderNode(&sb, p, c.Values[p.ID], []string{p.ID}, bad, 1, fmt.Sprintf("%d.", i+1))
	}
	return StyleBorder.Render(sb.String())
}

func renderNode(sb *strings.Builder, n *builder.Param, cell *builder.Value, path []string, bad map[string]string, depth int, ordinal string) {
	indent := strings.Repeat("  ", depth)
	label := n.Name
	if label == "" {
		label = "(element)"
	}

	line := fmt.Sprintf("%s%s %s %s  %s", indent, Meta(ordinal), StyleValue.Render(label),
		TypeName(n.Type), Meta(builder.ShortID(n.ID)))
	if reason, isBad := bad[strings.Join(path, "/")]; isBad {
		line += "  " + Err(reason)
	}

	switch {
	case builder.IsTuple(n.Type):
		sb.WriteString(line + "\n")
		for _, f := range n.Children {
			var fc *builder.Value
			if cell != nil {
				fc = cell.Fields[f.Name]
			}
			renderNode(sb, f, fc, append(path, f.ID), bad, depth+1, "·")
		}
	case builder.IsArray(n.Type):
		count := 0
		if cell != nil {
			count = len(cell.Items)
		}
		sb.WriteString(line + "  " + Meta(fmt.Sprintf("%d item(s)", count)) + "\n")
		if cell == nil {
			return
		}
		tmpl := n.Children[0]
		for i, it := range cell.Items {
			renderItem(sb, tmpl, it, append(path, it.ID), bad, depth+1, i)
		}
	default:
		sb.WriteString(line + renderLeafValue(cell) + "\n")
	}
}

func renderItem(sb *strings.Builder, tmpl *builder.Param, it *builder.Item, path []string, bad map[string]string, depth int, idx int) {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s %s", indent, Meta(fmt.Sprintf("[%d]", idx)), Meta(builder.ShortID(it.ID)))
	if reason, isBad := bad[strings.Join(path, "/")]; isBad {
		line += "  " + Err(reason)
	}

	switch {
	case builder.IsTuple(tmpl.Type):
		sb.WriteString(line + "\n")
		for _, f := range tmpl.Children {
			var fc *builder.Value
			if it.Value != nil {
				fc = it.Value.Fields[f.Name]
			}
			renderNode(sb, f, fc, append(path, f.ID), bad, depth+1, "·")
		}
	case builder.IsArray(tmpl.Type):
		sb.WriteString(line + "\n")
		renderNode(sb, tmpl, it.Value, path, bad, depth+1, "·")
	default:
		sb.WriteString(line + renderLeafValue(it.Value) + "\n")
	}
}

func renderLeafValue(cell *builder.Value) string {
	if cell == nil || cell.Raw == "" {
		return "  " + Warn("empty")
	}
	v := cell.Raw
	if strings.HasPrefix(v, "0x") {
		return "  = " + Hex(TruncateHex(v))
	}
	return "  = " + Val(v)
}
