package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSignature(t *testing.T) {
	cases := map[string]string{
		"transfer(address,uint256)":            "transfer(address,uint256)",
		"transfer(address to, uint256 amount)": "transfer(address,uint256)",
		"name()":                               "name()",
		"f( uint8 x ,bool y )":                 "f(uint8,bool)",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeSignature(in), in)
	}
}
