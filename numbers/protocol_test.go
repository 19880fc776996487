package numbers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		kind LineKind
		n    Number
	}{
		{line: "000000000", kind: LineNumber, n: 0},
		{line: "000000001", kind: LineNumber, n: 1},
		{line: "100000000", kind: LineNumber, n: 100000000},
		{line: "123456789", kind: LineNumber, n: 123456789},
		{line: "999999999", kind: LineNumber, n: MaxNumber},
		{line: "terminate", kind: LineTerminate},
		{line: "", kind: LineInvalid},
		{line: "1", kind: LineInvalid},
		{line: "00000001", kind: LineInvalid},
		{line: "1000000001", kind: LineInvalid},
		{line: "10000000t", kind: LineInvalid},
		{line: " 00000001", kind: LineInvalid},
		{line: "-00000001", kind: LineInvalid},
		{line: "+00000001", kind: LineInvalid},
		{line: "Terminate", kind: LineInvalid},
		{line: "terminate ", kind: LineInvalid},
		{line: "terminatex", kind: LineInvalid},
		{line: "١٢٣٤٥٦٧٨٩", kind: LineInvalid},
		{line: "000000001\r", kind: LineInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			kind, n := ParseLine(tc.line)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.n, n)
		})
	}
}

func TestAppendNumber(t *testing.T) {
	assert.Equal(t, "0\n", string(AppendNumber(nil, 0)))
	assert.Equal(t, "1\n", string(AppendNumber(nil, 1)))
	assert.Equal(t, "999999999\n", string(AppendNumber(nil, MaxNumber)))
	assert.Equal(t, "x42\n", string(AppendNumber([]byte("x"), 42)))
}
