package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Binance", "binance"},
		{"Gate.io", "gate-io"},
		{"Crypto.com Exchange", "crypto-com-exchange"},
		{"  OKX  ", "okx"},
		{"BIT2C", "bit2c"},
		{"----", ""},
		{"", ""},
		{"Bitstamp!", "bitstamp"},
		{"a  b", "a-b"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.name), "input %q", tc.name)
	}
}
