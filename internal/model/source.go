// Package model defines the data structures shared by the CPACS editing layers.
package model

// Path represents a file system path.
type Path string

// FuselageLayout describes the axial split of a generated fuselage.
type FuselageLayout struct {
	TotalLength  float64
	NoseFraction float64
	TailFraction float64
}

// Default nose and tail fractions of a generated fuselage.
const (
	DefaultNoseFraction = 0.1
	DefaultTailFraction = 0.1
)

// MainFraction is the share of the fuselage between nose and tail.
func (l FuselageLayout) MainFraction() float64 {
	return 1 - l.NoseFraction - l.TailFraction
}

// SegmentLengths returns the nose, main and tail segment lengths in creation order.
func (l FuselageLayout) SegmentLengths() [3]float64 {
	return [3]float64{
		l.NoseFraction * l.TotalLength,
		l.MainFraction() * l.TotalLength,
		l.TailFraction * l.TotalLength,
	}
}
