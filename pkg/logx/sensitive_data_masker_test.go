package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"card_tracker/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Catalog token query parameter",
			input:  []byte("GET /api/products?limit=50&search=jordan&t=abc123def HTTP/1.1"),
			output: []byte("GET /api/products?limit=50&search=jordan&t=[MASKED] HTTP/1.1"),
		},
		{
			name:   "Token as first query parameter",
			input:  []byte("GET /api/product?t=abc123&id=42 HTTP/1.1"),
			output: []byte("GET /api/product?t=[MASKED]&id=42 HTTP/1.1"),
		},
		{
			name:   "Telegram bot path",
			input:  []byte("POST /bot123456:AA-bb_CC/sendMessage HTTP/1.1"),
			output: []byte("POST /bot[MASKED]/sendMessage HTTP/1.1"),
		},
		{
			name:   "Token JSON field",
			input:  []byte(`{"token":"abc","query":"jordan"}`),
			output: []byte(`{"token":"[MASKED]","query":"jordan"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
