package speaker

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// WriteReport writes the result in the plain-text report format:
//
//	Speaker A: <scoreA>
//	Speaker B: <scoreB>
//
//	Conclusion: Speaker <label> is most likely
func (r Result) WriteReport(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Speaker A: %s\nSpeaker B: %s\n\nConclusion: Speaker %s is most likely\n",
		formatScore(r.ScoreA), formatScore(r.ScoreB), r.Label)
	return err
}

// formatScore prints the shortest round-tripping digits, switching to
// exponent notation below 1e-4 and from 1e16 up. Integral values keep a
// trailing ".0" so a score always reads as a float.
func formatScore(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && f != 0 && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
