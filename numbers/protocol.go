package numbers

import (
	"strconv"

	"github.com/dlclark/regexp2"
)

// Sentinel is the line that asks the server to shut down.
const Sentinel = "terminate"

// maxLineLength bounds the scanner buffer. Anything near it is malformed anyway.
const maxLineLength = 1024

type LineKind int

const (
	LineInvalid LineKind = iota
	LineNumber
	LineTerminate
)

func (k LineKind) String() string {
	switch k {
	case LineNumber:
		return "number"
	case LineTerminate:
		return "terminate"
	default:
		return "invalid"
	}
}

var lineFormat = regexp2.MustCompile(`^(?:(?<number>[0-9]{9})|(?<sentinel>`+Sentinel+`))$`, regexp2.None)

// ParseLine classifies one line (without its terminator).
func ParseLine(line string) (LineKind, Number) {
	// Cheap reject before running the matcher
	if len(line) != 9 {
		return LineInvalid, 0
	}

	m, err := lineFormat.FindStringMatch(line)
	if err != nil || m == nil {
		return LineInvalid, 0
	}

	if g := m.GroupByName("number"); g != nil && len(g.Captures) > 0 {
		n, err := strconv.ParseUint(g.String(), 10, 32)
		if err != nil {
			return LineInvalid, 0
		}
		return LineNumber, Number(n)
	}
	return LineTerminate, 0
}

// AppendNumber appends the decimal form of n and a newline to b.
func AppendNumber(b []byte, n Number) []byte {
	b = strconv.AppendUint(b, uint64(n), 10)
	return append(b, '\n')
}
