package builder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const erc20TransferTemplate = `{
  "name": "transfer",
  "params": [
    {"name": "to", "type": "address", "value": "0x1111111111111111111111111111111111111111"},
    {"name": "amount", "type": "uint256", "value": "1000000"}
  ]
}`

func TestLoadTemplateTransfer(t *testing.T) {
	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(erc20TransferTemplate), &tpl))

	c, err := LoadTemplate(tpl)
	require.NoError(t, err)
	require.Len(t, c.Params, 2)
	assert.Empty(t, c.Complete())

	got, err := c.Encode()
	require.NoError(t, err)
	assert.Equal(t, "0xa9059cbb", got[:10])
}

func TestLoadTemplateStampsFreshIdentifiers(t *testing.T) {
	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(erc20TransferTemplate), &tpl))

	a, err := LoadTemplate(tpl)
	require.NoError(t, err)
	b, err := LoadTemplate(tpl)
	require.NoError(t, err)

	for i := range a.Params {
		assert.NotEqual(t, a.Params[i].ID, b.Params[i].ID,
			"identifiers must be freshly generated per import")
	}
}

func TestLoadTemplateNestedComposite(t *testing.T) {
	doc := `{
	  "name": "fill",
	  "params": [
	    {
	      "name": "orders", "type": "tuple[]",
	      "components": [
	        {"name": "maker", "type": "address"},
	        {"name": "amounts", "type": "uint256[]"}
	      ],
	      "value": [
	        {"maker": "0x1111111111111111111111111111111111111111", "amounts": ["1", "2"]},
	        {"maker": "0x2222222222222222222222222222222222222222", "amounts": []}
	      ]
	    }
	  ]
	}`
	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(doc), &tpl))

	c, err := LoadTemplate(tpl)
	require.NoError(t, err)
	require.Len(t, c.Params, 1)
	assert.Empty(t, c.Complete())
	assert.Equal(t, "fill((address,uint256[])[])", c.Describe().Signature)

	items := c.Values[c.Params[0].ID].Items
	require.Len(t, items, 2)
	assert.Len(t, items[0].Value.Fields["amounts"].Items, 2)

	_, err = c.Encode()
	require.NoError(t, err)
}

func TestLoadTemplateRejectsUnquotedNumbers(t *testing.T) {
	doc := `{"name": "f", "params": [{"name": "n", "type": "uint256", "value": 1000000}]}`
	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(doc), &tpl))

	_, err := LoadTemplate(tpl)
	require.Error(t, err, "floats would lose precision above 2^53")
	assert.Contains(t, err.Error(), "quote numbers")
}

func TestLoadTemplateNormalizesBool(t *testing.T) {
	doc := `{"name": "f", "params": [{"name": "ok", "type": "bool", "value": "tRue"}]}`
	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(doc), &tpl))

	c, err := LoadTemplate(tpl)
	require.NoError(t, err)
	assert.Equal(t, "true", c.Values[c.Params[0].ID].Raw)
	assert.Empty(t, c.Complete())
}

func TestLoadTemplateRejectsBadType(t *testing.T) {
	_, err := LoadTemplate(Template{Name: "f", Params: []TemplateParam{{Name: "x", Type: "uint257"}}})
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	c := NewCall("fill")
	arr, _ := c.AddParameter("orders", "tuple[]")
	tmpl := c.Params[0].Children[0].ID
	maker, _ := c.AddComponent([]string{arr, tmpl}, "maker", "address")
	i1, _ := c.AddItem([]string{arr})
	require.NoError(t, c.SetValue([]string{arr, i1, maker}, "0x"+rep("11", 20)))

	exported := c.ExportTemplate()

	// Survive a JSON round trip, as `template save` / `template load` would.
	data, err := json.Marshal(exported)
	require.NoError(t, err)
	var back Template
	require.NoError(t, json.Unmarshal(data, &back))

	re, err := LoadTemplate(back)
	require.NoError(t, err)

	assert.Equal(t, c.Describe().Signature, re.Describe().Signature)
	items := re.Values[re.Params[0].ID].Items
	require.Len(t, items, 1)
	assert.Equal(t, "0x"+rep("11", 20), items[0].Value.Fields["maker"].Raw)
	assert.NotEqual(t, c.Params[0].ID, re.Params[0].ID)
}
