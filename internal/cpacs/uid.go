package cpacs

import "fmt"

// Identifier patterns for generated nodes. prefix is the aircraft name.

func ModelUID(prefix string) string          { return prefix + "_aircraft" }
func ReferencePointUID(prefix string) string { return prefix + "_referencePoint" }
func FuselageUID(prefix string) string       { return prefix + "_fuselage1ID" }
func ProfileUID(prefix string) string        { return prefix + "_fuselageCircleProfileID" }

func SectionUID(prefix string, i int) string {
	return fmt.Sprintf("%s_section%dID", prefix, i)
}

func SectionElementUID(prefix string, i int) string {
	return SectionUID(prefix, i) + "_element1ID"
}

func SegmentUID(prefix string, i int) string {
	return fmt.Sprintf("%s_segment%dID", prefix, i)
}

func PositioningUID(prefix string, i int) string {
	return fmt.Sprintf("%s_positioning%dID", prefix, i)
}

// TransformationUID names the transformation block owned by owner.
func TransformationUID(owner string) string {
	return owner + "_transformation1"
}

// TransformationPartUID names a scaling/rotation/translation vector of a transformation.
func TransformationPartUID(transformation, part string) string {
	return fmt.Sprintf("%s_%s1", transformation, part)
}
