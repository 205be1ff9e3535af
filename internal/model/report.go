package model

// RescaleReport represents the outcome of one rescale job.
type RescaleReport struct {
	Input               Path
	Output              Path
	Scale               float64
	Before              AircraftGeometrySummary
	After               AircraftGeometrySummary
	SectionsUpdated     int
	PositioningsUpdated int
	Committed           bool
	// Original and Rescaled hold the rendered documents of a dry run.
	Original []byte
	Rescaled []byte
}

// FieldsUpdated counts every scalar written by the rescale.
func (r RescaleReport) FieldsUpdated() int {
	return r.SectionsUpdated*4 + r.PositioningsUpdated
}

// GenerateReport represents the outcome of generating a fuselage document.
type GenerateReport struct {
	AircraftName  string
	Output        Path
	Layout        FuselageLayout
	Sections      int
	Segments      int
	Positionings  int
	ProfilePoints int
	UIDs          []string
	Validation    *ValidationReport
}
