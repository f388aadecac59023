package twc

import (
	"regexp"
	"strings"
)

// Поля, которые принимает партнёр. Всё остальное отбрасывается: неизвестное
// поле партнёр отклонит вместе с заказом.
const (
	FieldControlType  = "Control Type"
	FieldControlSide  = "Control Side"
	FieldChainColour  = "Chain Colour"
	FieldFit          = "Fit"
	FieldRollDir      = "Roll Direction"
	FieldBottomRail   = "Bottom Rail"
	FieldBracket      = "Bracket Colour"
	FieldMotor        = "Motor"
	FieldHeading      = "Heading"
	FieldLining       = "Lining"
	FieldStack        = "Stack"
	FieldColour       = "Colour"
	FieldFabricWidth  = "Fabric Width"
	FieldPanelCount   = "Number of Panels"
	FieldTrack        = "Track"
	FieldLouvreSize   = "Louvre Size"
	FieldFrameType    = "Frame Type"
	FieldTiltRod      = "Tilt Rod"
	FieldMidrail      = "Midrail"
	FieldSlatSize     = "Slat Size"
	FieldVaneSize     = "Vane Size"
	FieldMountingNote = "Mounting Notes"
)

var knownFields = map[string]struct{}{}

func init() {
	for _, f := range []string{
		FieldControlType, FieldControlSide, FieldChainColour, FieldFit, FieldRollDir,
		FieldBottomRail, FieldBracket, FieldMotor, FieldHeading, FieldLining,
		FieldStack, FieldColour, FieldFabricWidth, FieldPanelCount, FieldTrack,
		FieldLouvreSize, FieldFrameType, FieldTiltRod, FieldMidrail, FieldSlatSize,
		FieldVaneSize, FieldMountingNote,
	} {
		knownFields[f] = struct{}{}
		// подпись, совпадающая с названием поля, тоже находит его
		fieldIndex[strings.ToLower(f)] = f
	}
}

// IsKnownField — принимает ли партнёр такое поле.
func IsKnownField(name string) bool {
	_, ok := knownFields[name]
	return ok
}

// fieldIndex: внутренний ключ → поле партнёра. Ключи в нижнем регистре,
// кроме тех, что исторически пишутся иначе (их находит поиск по сырому ключу).
var fieldIndex = map[string]string{
	"control_type":      FieldControlType,
	"controltype":       FieldControlType,
	"operation":         FieldControlType,
	"control_side":      FieldControlSide,
	"control_position":  FieldControlSide,
	"chain_colour":      FieldChainColour,
	"chain_color":       FieldChainColour,
	"mount_type":        FieldFit,
	"fit":               FieldFit,
	"fitting":           FieldFit,
	"roll_direction":    FieldRollDir,
	"roll":              FieldRollDir,
	"bottom_rail":       FieldBottomRail,
	"bottom_bar":        FieldBottomRail,
	"bracket_colour":    FieldBracket,
	"bracket_color":     FieldBracket,
	"motor":             FieldMotor,
	"motor_type":        FieldMotor,
	"heading":           FieldHeading,
	"heading_type":      FieldHeading,
	"lining":            FieldLining,
	"lining_type":       FieldLining,
	"stack":             FieldStack,
	"stacking":          FieldStack,
	"opening":           FieldStack,
	"colour":            FieldColour,
	"color":             FieldColour,
	"fabric_colour":     FieldColour,
	"fabric_color":      FieldColour,
	"fabric_width":      FieldFabricWidth,
	"widths_required":   FieldPanelCount,
	"panel_count":       FieldPanelCount,
	"track":             FieldTrack,
	"track_type":        FieldTrack,
	"louvre_size":       FieldLouvreSize,
	"frame":             FieldFrameType,
	"frame_type":        FieldFrameType,
	"tilt_rod":          FieldTiltRod,
	"midrail":           FieldMidrail,
	"midrail_position":  FieldMidrail,
	"slat_size":         FieldSlatSize,
	"vane_size":         FieldVaneSize,
	"mounting_notes":    FieldMountingNote,
	"installation_note": FieldMountingNote,
	"ControlType":       FieldControlType,
	"chainColor":        FieldChainColour,
}

// valueTranslations: поле → наше значение (нижний регистр) → значение партнёра.
var valueTranslations = map[string]map[string]string{
	FieldControlType: {
		"chain":     "Cord operated",
		"cord":      "Cord operated",
		"corded":    "Cord operated",
		"motor":     "Motorised",
		"motorised": "Motorised",
		"motorized": "Motorised",
		"wand":      "Wand",
		"spring":    "Spring",
	},
	FieldControlSide: {
		"left":  "L",
		"right": "R",
		"l":     "L",
		"r":     "R",
	},
	FieldFit: {
		"inside":  "Inside",
		"recess":  "Inside",
		"outside": "Outside",
		"face":    "Outside",
	},
	FieldRollDir: {
		"standard": "Standard",
		"front":    "Standard",
		"back":     "Reverse",
		"reverse":  "Reverse",
	},
	FieldStack: {
		"left":   "Stack Left",
		"right":  "Stack Right",
		"centre": "Centre Opening",
		"center": "Centre Opening",
		"split":  "Centre Opening",
	},
}

func translate(field, value string) string {
	if tr, ok := valueTranslations[field]; ok {
		if v, ok := tr[strings.ToLower(value)]; ok {
			return v
		}
	}
	return value
}

var emptyValues = map[string]struct{}{"": {}, "n/a": {}, "none": {}}

func isEmptyValue(v string) bool {
	_, ok := emptyValues[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// colourCode — ведущий числовой код цвета и необязательный дефис.
var colourCode = regexp.MustCompile(`^\d+\s*(?:-\s*)?`)

// ExtractColour: "3095 LIGHT CREAM" и "3095 - LIGHT CREAM" → "LIGHT CREAM".
// Строки без кода ("TO CONFIRM") возвращаются как есть.
func ExtractColour(s string) string {
	s = strings.TrimSpace(s)
	name := strings.TrimSpace(colourCode.ReplaceAllString(s, ""))
	if name == "" {
		// только код — отдаём его
		return s
	}
	return name
}

func isColourField(field string) bool {
	return strings.HasSuffix(field, "Colour")
}
