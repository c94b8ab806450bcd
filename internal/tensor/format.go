package tensor

import (
	"strconv"
	"strings"
)

// maxPrintedElements caps the values printed for arrays of rank 3 and higher.
const maxPrintedElements = 10

// String returns a human-readable representation with 4 decimal places.
//
// 1-D arrays print every value, 2-D arrays print one row per line, higher
// ranks print the first 10 flat values followed by "...".
func (t *NDArray) String() string {
	var b strings.Builder
	b.WriteString("NDArray(shape=[")
	for i, d := range t.shape {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(d))
	}
	b.WriteString("], data=")

	switch len(t.shape) {
	case 1:
		writeRow(&b, t.data)
	case 2:
		rows, cols := t.shape[0], t.shape[1]
		b.WriteString("\n[")
		for r := 0; r < rows; r++ {
			if r > 0 {
				b.WriteString(",\n ")
			}
			writeRow(&b, t.data[r*cols:(r+1)*cols])
		}
		b.WriteString("]")
	default:
		n := min(len(t.data), maxPrintedElements)
		b.WriteString("[")
		writeValues(&b, t.data[:n])
		if len(t.data) > maxPrintedElements {
			b.WriteString(", ...")
		}
		b.WriteString("]")
	}
	b.WriteString(")")
	return b.String()
}

func writeRow(b *strings.Builder, row []float64) {
	b.WriteString("[")
	writeValues(b, row)
	b.WriteString("]")
}

func writeValues(b *strings.Builder, values []float64) {
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v, 'f', 4, 64))
	}
}
