package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddParameterDefaults(t *testing.T) {
	c := NewCall("transfer")

	id, err := c.AddParameter("", "")
	require.NoError(t, err)
	require.Len(t, c.Params, 1)
	assert.Equal(t, "param1", c.Params[0].Name)
	assert.Equal(t, "address", c.Params[0].Type)
	assert.Contains(t, c.Values, id)
}

func TestAddParameterDoubleSubmitAbsorbed(t *testing.T) {
	c := NewCall("transfer")

	first, err := c.AddParameter("", "")
	require.NoError(t, err)
	second, err := c.AddParameter("", "")
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeated default add must return the existing parameter")
	assert.Len(t, c.Params, 1)

	// An explicit name is a real add, not a duplicate.
	third, err := c.AddParameter("amount", "uint256")
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
	assert.Len(t, c.Params, 2)
}

func TestAddParameterExplicitPlaceholderNameIsNotAbsorbing(t *testing.T) {
	c := NewCall("f")

	// Explicitly named "param1" — happens to look like the placeholder, but
	// the user typed it, so the next default add is a real append.
	first, err := c.AddParameter("param1", "address")
	require.NoError(t, err)
	second, err := c.AddParameter("", "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	require.Len(t, c.Params, 2)
	assert.Equal(t, "param2", c.Params[1].Name)
}

func TestAddParameterRenameDisarmsDoubleSubmitGuard(t *testing.T) {
	c := NewCall("f")
	first, err := c.AddParameter("", "")
	require.NoError(t, err)
	require.NoError(t, c.UpdateComponent([]string{first}, "to", ""))

	second, err := c.AddParameter("", "")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Len(t, c.Params, 2)
}

func TestAddParameterRejectsUnknownType(t *testing.T) {
	c := NewCall("f")
	_, err := c.AddParameter("x", "uint257")
	require.Error(t, err)
	assert.Empty(t, c.Params)
}

func TestInsertionOrderSurvivesRemoval(t *testing.T) {
	c := NewCall("f")
	a, _ := c.AddParameter("a", "uint256")
	b, _ := c.AddParameter("b", "bool")
	d, _ := c.AddParameter("d", "string")
	_ = a

	c.RemoveComponent([]string{b})

	require.Len(t, c.Params, 2)
	assert.Equal(t, "a", c.Params[0].Name)
	assert.Equal(t, "d", c.Params[1].Name)
	assert.Equal(t, d, c.Params[1].ID)
	assert.NotContains(t, c.Values, b, "top-level removal drops the store entry")
}

func TestAddComponentIdempotent(t *testing.T) {
	c := NewCall("f")
	tup, err := c.AddParameter("order", "tuple")
	require.NoError(t, err)

	f1, err := c.AddComponent([]string{tup}, "maker", "address")
	require.NoError(t, err)
	require.NotEmpty(t, f1)

	// Same (name, type) again: absorbed, same identifier back.
	f2, err := c.AddComponent([]string{tup}, "maker", "address")
	require.NoError(t, err)
	assert.Equal(t, f1, f2)
	assert.Len(t, c.Params[0].Children, 1)

	// Same name, different type is a distinct field.
	f3, err := c.AddComponent([]string{tup}, "maker", "uint256")
	require.NoError(t, err)
	assert.NotEqual(t, f1, f3)
	assert.Len(t, c.Params[0].Children, 2)
}

func TestAddComponentBrokenPathIsNoOp(t *testing.T) {
	c := NewCall("f")
	_, _ = c.AddParameter("a", "uint256")

	id, err := c.AddComponent([]string{"no-such-id"}, "x", "bool")
	require.NoError(t, err)
	assert.Empty(t, id)

	// Leaves are not composites; also a no-op.
	id, err = c.AddComponent([]string{c.Params[0].ID}, "x", "bool")
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Empty(t, c.Params[0].Children)
}

func TestArrayItems(t *testing.T) {
	c := NewCall("f")
	arr, err := c.AddParameter("holders", "address[]")
	require.NoError(t, err)
	require.Len(t, c.Params[0].Children, 1, "array node owns its element template")

	first, err := c.AddItem([]string{arr})
	require.NoError(t, err)
	second, err := c.AddItem([]string{arr})
	require.NoError(t, err)
	require.NotEqual(t, first, second, "item identifiers are never shared")

	require.NoError(t, c.SetValue([]string{arr, first}, "0x"+rep("11", 20)))
	require.NoError(t, c.SetValue([]string{arr, second}, "0x"+rep("22", 20)))

	c.RemoveComponent([]string{arr, first})

	items := c.Values[arr].Items
	require.Len(t, items, 1)
	assert.Equal(t, second, items[0].ID)
	assert.Equal(t, "0x"+rep("22", 20), items[0].Value.Raw, "survivor's value is untouched")
}

func TestElementTemplateCannotBeRemoved(t *testing.T) {
	c := NewCall("f")
	arr, _ := c.AddParameter("xs", "uint256[]")
	tmpl := c.Params[0].Children[0].ID

	c.RemoveComponent([]string{arr, tmpl})
	assert.Len(t, c.Params[0].Children, 1)
}

func TestRetypeResetsValue(t *testing.T) {
	c := NewCall("f")
	id, _ := c.AddParameter("x", "uint256")
	require.NoError(t, c.SetValue([]string{id}, "42"))

	require.NoError(t, c.UpdateComponent([]string{id}, "", "bool"))
	assert.Equal(t, "bool", c.Params[0].Type)
	assert.Empty(t, c.Values[id].Raw, "retype resets the value to the canonical default")

	// Same type again is not a change; the value survives.
	require.NoError(t, c.SetValue([]string{id}, "true"))
	require.NoError(t, c.UpdateComponent([]string{id}, "", "bool"))
	assert.Equal(t, "true", c.Values[id].Raw)
}

func TestRetypeArrayToArrayKeepsItemCount(t *testing.T) {
	c := NewCall("f")
	arr, _ := c.AddParameter("xs", "address[]")
	a, _ := c.AddItem([]string{arr})
	b, _ := c.AddItem([]string{arr})
	require.NoError(t, c.SetValue([]string{arr, a}, "0x"+rep("11", 20)))
	require.NoError(t, c.SetValue([]string{arr, b}, "0x"+rep("22", 20)))

	require.NoError(t, c.UpdateComponent([]string{arr}, "", "uint256[]"))

	items := c.Values[arr].Items
	require.Len(t, items, 2, "items survive an element retype")
	assert.Empty(t, items[0].Value.Raw, "item values reset to the new element default")
	assert.Empty(t, items[1].Value.Raw)
	assert.Equal(t, "uint256", c.Params[0].Children[0].Type)
}

func TestRetypeArrayToLeafDropsItems(t *testing.T) {
	c := NewCall("f")
	arr, _ := c.AddParameter("xs", "address[]")
	_, _ = c.AddItem([]string{arr})

	require.NoError(t, c.UpdateComponent([]string{arr}, "", "bool"))
	assert.Empty(t, c.Params[0].Children)
	assert.Empty(t, c.Values[arr].Items)
}

func TestTupleFieldRenameMigratesValue(t *testing.T) {
	c := NewCall("f")
	tup, _ := c.AddParameter("order", "tuple")
	fld, err := c.AddComponent([]string{tup}, "a", "string")
	require.NoError(t, err)
	require.NoError(t, c.SetValue([]string{tup, fld}, "x"))

	require.NoError(t, c.UpdateComponent([]string{tup, fld}, "b", ""))

	fields := c.Values[tup].Fields
	assert.NotContains(t, fields, "a")
	require.Contains(t, fields, "b")
	assert.Equal(t, "x", fields["b"].Raw)
}

func TestTupleFieldRenameMigratesEveryArrayItem(t *testing.T) {
	c := NewCall("f")
	arr, _ := c.AddParameter("orders", "tuple[]")
	tmpl := c.Params[0].Children[0].ID
	fld, err := c.AddComponent([]string{arr, tmpl}, "maker", "address")
	require.NoError(t, err)

	i1, _ := c.AddItem([]string{arr})
	i2, _ := c.AddItem([]string{arr})
	require.NoError(t, c.SetValue([]string{arr, i1, fld}, "0x"+rep("11", 20)))
	require.NoError(t, c.SetValue([]string{arr, i2, fld}, "0x"+rep("22", 20)))

	require.NoError(t, c.UpdateComponent([]string{arr, tmpl, fld}, "taker", ""))

	for i, it := range c.Values[arr].Items {
		assert.NotContains(t, it.Value.Fields, "maker", "item %d", i)
		require.Contains(t, it.Value.Fields, "taker", "item %d", i)
	}
	assert.Equal(t, "0x"+rep("22", 20), c.Values[arr].Items[1].Value.Fields["taker"].Raw)
}

func TestUpdateBrokenPathIsNoOp(t *testing.T) {
	c := NewCall("f")
	_, _ = c.AddParameter("a", "uint256")
	require.NoError(t, c.UpdateComponent([]string{"missing"}, "b", "bool"))
	assert.Equal(t, "a", c.Params[0].Name)
	assert.Equal(t, "uint256", c.Params[0].Type)
}

func TestSetValueNormalizesBool(t *testing.T) {
	c := NewCall("f")
	id, _ := c.AddParameter("flag", "bool")
	require.NoError(t, c.SetValue([]string{id}, "TRUE"))
	assert.Equal(t, "true", c.Values[id].Raw)
}

func TestSetValueOnCompositeFails(t *testing.T) {
	c := NewCall("f")
	id, _ := c.AddParameter("t", "tuple")
	assert.Error(t, c.SetValue([]string{id}, "nope"))
}

func TestSetValueIntoTupleInsideArrayItem(t *testing.T) {
	c := NewCall("f")
	arr, _ := c.AddParameter("orders", "tuple[]")
	tmpl := c.Params[0].Children[0].ID
	amt, err := c.AddComponent([]string{arr, tmpl}, "amount", "uint256")
	require.NoError(t, err)

	item, _ := c.AddItem([]string{arr})
	require.NoError(t, c.SetValue([]string{arr, item, amt}, "7"))

	assert.Equal(t, "7", c.Values[arr].Items[0].Value.Fields["amount"].Raw)
}

func TestResolvePrefixes(t *testing.T) {
	c := NewCall("f")
	tup, _ := c.AddParameter("order", "tuple")
	fld, _ := c.AddComponent([]string{tup}, "maker", "address")

	path, err := c.ResolvePrefixes([]string{tup[:8], fld[:8]})
	require.NoError(t, err)
	assert.Equal(t, []string{tup, fld}, path)

	_, err = c.ResolvePrefixes([]string{"zzzz"})
	assert.Error(t, err)
}

// rep repeats a two-digit hex byte n times.
func rep(b string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += b
	}
	return out
}
