package model

// AircraftGeometrySummary is what the metadata extractor reports about a document.
type AircraftGeometrySummary struct {
	AircraftName         string
	FuselageLength       float64
	FuselageSectionCount int
	SegmentCount         int
	PositioningCount     int
}

// GeometryParams lists the geometry targets a rescale can apply.
// New targets are added as named, typed fields.
type GeometryParams struct {
	FuselageLengthTarget *float64 `yaml:"fuselageLengthTarget"`
}

// FuselageLength returns the fuselage length target and whether it was set.
func (p GeometryParams) FuselageLength() (float64, bool) {
	if p.FuselageLengthTarget == nil {
		return 0, false
	}

	return *p.FuselageLengthTarget, true
}

// WithFuselageLength returns a GeometryParams targeting the given fuselage length.
func WithFuselageLength(length float64) GeometryParams {
	return GeometryParams{FuselageLengthTarget: &length}
}
