package model

import (
	"math"
	"strconv"
)

// NumberFormat controls how numeric fields are written into a document.
type NumberFormat struct {
	verb      byte
	precision int
}

// Fixed formats with a fixed number of decimals, like %.8f.
func Fixed(decimals int) NumberFormat {
	return NumberFormat{verb: 'f', precision: decimals}
}

// General formats with the given significant digits, like %g.
func General(digits int) NumberFormat {
	return NumberFormat{verb: 'g', precision: digits}
}

// Integer formats a value rounded to the nearest integer, like %d.
var Integer = NumberFormat{verb: 'd'}

// RescaleFormat is used for every value written by a rescale.
var RescaleFormat = Fixed(8)

// Format renders v.
func (f NumberFormat) Format(v float64) string {
	switch f.verb {
	case 'd':
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case 'g':
		return strconv.FormatFloat(v, 'g', f.precision, 64)
	case 'f':
		return strconv.FormatFloat(v, 'f', f.precision, 64)
	default:
		return strconv.FormatFloat(v, 'f', 6, 64)
	}
}

// String returns the printf-style equivalent of the format.
func (f NumberFormat) String() string {
	switch f.verb {
	case 'd':
		return "%d"
	case 'g', 'f':
		return "%." + strconv.Itoa(f.precision) + string(f.verb)
	default:
		return "%f"
	}
}
