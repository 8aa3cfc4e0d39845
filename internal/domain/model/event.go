// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Gender of an event.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
	GenderMixed
)

// Possessive returns the display prefix used in event names, e.g. "Women's".
func (g Gender) Possessive() string {
	switch g {
	case GenderMale:
		return "Men's"
	case GenderFemale:
		return "Women's"
	case GenderMixed:
		return "Mixed"
	default:
		return "Unknown"
	}
}

// Noun returns the bare gender label, e.g. "Women".
func (g Gender) Noun() string {
	switch g {
	case GenderMale:
		return "Men"
	case GenderFemale:
		return "Women"
	case GenderMixed:
		return "Mixed"
	default:
		return "Unknown"
	}
}

func (g Gender) String() string { return g.Noun() }

// ParseGender accepts long names, team labels and single-letter codes.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "men", "men's", "boys":
		return GenderMale, nil
	case "f", "w", "female", "women", "women's", "girls":
		return GenderFemale, nil
	case "x", "mixed", "mixed's":
		return GenderMixed, nil
	}
	return GenderUnknown, fmt.Errorf("unknown gender %q", s)
}

// Stroke of an event.
type Stroke int

const (
	StrokeUnknown Stroke = iota
	StrokeFreestyle
	StrokeBackstroke
	StrokeBreaststroke
	StrokeButterfly
	StrokeMedley
)

func (s Stroke) String() string {
	switch s {
	case StrokeFreestyle:
		return "Freestyle"
	case StrokeBackstroke:
		return "Backstroke"
	case StrokeBreaststroke:
		return "Breaststroke"
	case StrokeButterfly:
		return "Butterfly"
	case StrokeMedley:
		return "Medley"
	default:
		return "Unknown"
	}
}

// ParseStroke accepts stroke names and their common short forms.
func ParseStroke(s string) (Stroke, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freestyle", "free", "fr":
		return StrokeFreestyle, nil
	case "backstroke", "back", "bk":
		return StrokeBackstroke, nil
	case "breaststroke", "breast", "br":
		return StrokeBreaststroke, nil
	case "butterfly", "fly", "fl":
		return StrokeButterfly, nil
	case "medley", "im":
		return StrokeMedley, nil
	}
	return StrokeUnknown, fmt.Errorf("unknown stroke %q", s)
}

// Course is the pool format an event is swum in.
type Course int

const (
	CourseUnknown Course = iota
	CourseSCY
	CourseLCM
	CourseSCM
)

func (c Course) String() string {
	switch c {
	case CourseSCY:
		return "SCY"
	case CourseLCM:
		return "LCM"
	case CourseSCM:
		return "SCM"
	default:
		return "Unknown"
	}
}

// ParseCourse accepts abbreviations ("SCY") and single-letter codes ("Y").
func ParseCourse(s string) (Course, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SCY", "Y":
		return CourseSCY, nil
	case "LCM", "L":
		return CourseLCM, nil
	case "SCM", "S":
		return CourseSCM, nil
	}
	return CourseUnknown, fmt.Errorf("unknown course %q", s)
}

// Event is a single race category together with its entries.
type Event struct {
	ID       string
	Gender   Gender
	Distance int
	Stroke   Stroke
	Course   Course
	Relay    bool
	Entries  []Entry
}

// Description is the event name without the gender prefix,
// e.g. "100 Freestyle (SCY)" or "200 Medley Relay (SCY)".
func (e Event) Description() string {
	return Describe(e.Distance, e.Stroke, e.Course, e.Relay)
}

// Name is the display name used to group results, e.g. "Women's 100 Freestyle (SCY)".
func (e Event) Name() string {
	return e.Gender.Possessive() + " " + e.Description()
}

// Code returns the compact event code ("1100Y" for 100 free SCY). The second
// return value is false when the stroke or course has no code.
func (e Event) Code() (string, bool) {
	var stroke string
	switch e.Stroke {
	case StrokeFreestyle:
		stroke = "1"
		if e.Relay {
			stroke = "6"
		}
	case StrokeBackstroke:
		stroke = "2"
	case StrokeBreaststroke:
		stroke = "3"
	case StrokeButterfly:
		stroke = "4"
	case StrokeMedley:
		stroke = "5"
		if e.Relay {
			stroke = "7"
		}
	default:
		return "", false
	}

	var course string
	switch e.Course {
	case CourseSCY:
		course = "Y"
	case CourseLCM:
		course = "L"
	case CourseSCM:
		course = "S"
	default:
		return "", false
	}
	return stroke + strconv.Itoa(e.Distance) + course, true
}

// Describe formats an event description from its parts.
func Describe(distance int, stroke Stroke, course Course, relay bool) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(distance))
	b.WriteByte(' ')
	b.WriteString(stroke.String())
	if relay {
		b.WriteString(" Relay")
	}
	b.WriteString(" (")
	b.WriteString(course.String())
	b.WriteByte(')')
	return b.String()
}

// Meet is the parsed contents of a meet results file.
type Meet struct {
	Name   string
	Date   time.Time
	Events []Event
}
