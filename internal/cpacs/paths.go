// Package cpacs holds the CPACS document paths and identifier patterns the
// editors address.
package cpacs

import "fmt"

// Fixed document paths for a single fuselage named "fuselage".
const (
	RootName          = "cpacs"
	Root              = "/" + RootName
	Header            = Root + "/header"
	Vehicles          = Root + "/vehicles"
	Aircraft          = Vehicles + "/aircraft"
	Model             = Aircraft + "/model"
	Reference         = Model + "/reference"
	Fuselages         = Model + "/fuselages"
	Fuselage          = Fuselages + "/fuselage"
	FuselageScaling   = Fuselage + "/transformation/scaling"
	Sections          = Fuselage + "/sections"
	Segments          = Fuselage + "/segments"
	Positionings      = Fuselage + "/positionings"
	Profiles          = Vehicles + "/profiles"
	FuselageProfiles  = Profiles + "/fuselageProfiles"
	FuselageProfile   = FuselageProfiles + "/fuselageProfile"
	ProfilePointList  = FuselageProfile + "/pointList"
	UIDAttribute      = "uID"
	SchemaLocation    = "cpacs_schema.xsd"
	XSINamespace      = "http://www.w3.org/2001/XMLSchema-instance"
	XSIPrefix         = "xsi"
	SchemaLocationKey = XSIPrefix + ":noNamespaceSchemaLocation"
)

// Child element names.
const (
	SectionName     = "section"
	SegmentName     = "segment"
	PositioningName = "positioning"
	FuselageName    = "fuselage"
)

// Indexed appends a 1-based ordinal step to parent.
func Indexed(parent, name string, ordinal int) string {
	return fmt.Sprintf("%s/%s[%d]", parent, name, ordinal)
}

// Child appends a plain step to parent.
func Child(parent, name string) string {
	return parent + "/" + name
}

// SectionPath addresses the i-th fuselage section.
func SectionPath(i int) string {
	return Indexed(Sections, SectionName, i)
}

// SegmentPath addresses the i-th fuselage segment.
func SegmentPath(i int) string {
	return Indexed(Segments, SegmentName, i)
}

// PositioningPath addresses the i-th fuselage positioning.
func PositioningPath(i int) string {
	return Indexed(Positionings, PositioningName, i)
}

// SectionScaling addresses the scaling vector of the i-th section.
func SectionScaling(i int) string {
	return SectionPath(i) + "/transformation/scaling"
}

// SectionTranslation addresses the translation vector of the i-th section.
func SectionTranslation(i int) string {
	return SectionPath(i) + "/transformation/translation"
}

// PositioningLength addresses the length of the i-th positioning.
func PositioningLength(i int) string {
	return PositioningPath(i) + "/length"
}
