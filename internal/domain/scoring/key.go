package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/meetscore/internal/domain/model"
)

// Key identifies one curve in a score table.
type Key struct {
	Gender   model.Gender
	Distance int
	Stroke   model.Stroke
	Course   model.Course
	Relay    bool
}

// KeyOf returns the table key for an event.
func KeyOf(e model.Event) Key {
	return Key{Gender: e.Gender, Distance: e.Distance, Stroke: e.Stroke, Course: e.Course, Relay: e.Relay}
}

// Description formats the key without its gender, e.g. "100 Freestyle (SCY)".
func (k Key) Description() string {
	return model.Describe(k.Distance, k.Stroke, k.Course, k.Relay)
}

// String formats the key exactly like the matching event display name.
func (k Key) String() string {
	return k.Gender.Possessive() + " " + k.Description()
}

// WithDescription returns a key for the same gender and another event.
func (k Key) WithDescription(desc string) (Key, error) {
	return ParseDescription(k.Gender, desc)
}

var genderPrefixes = []struct {
	prefix string
	gender model.Gender
}{
	{"Men's ", model.GenderMale},
	{"Women's ", model.GenderFemale},
	{"Mixed's ", model.GenderMixed},
	{"Mixed ", model.GenderMixed},
}

// ParseKey parses an event display name such as "Women's 100 Freestyle (SCY)".
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	for _, p := range genderPrefixes {
		if rest, ok := strings.CutPrefix(s, p.prefix); ok {
			return ParseDescription(p.gender, rest)
		}
	}
	return Key{}, fmt.Errorf("%w: %q: unknown gender prefix", ErrInvalidKey, s)
}

// ParseDescription parses "<distance> <stroke> [Relay] (<course>)" for a gender.
func ParseDescription(g model.Gender, desc string) (Key, error) {
	desc = strings.TrimSpace(desc)
	head, tail, ok := strings.Cut(desc, "(")
	if !ok || !strings.HasSuffix(tail, ")") {
		return Key{}, fmt.Errorf("%w: %q: missing course", ErrInvalidKey, desc)
	}
	course, err := model.ParseCourse(strings.TrimSuffix(tail, ")"))
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q: %v", ErrInvalidKey, desc, err)
	}

	fields := strings.Fields(head)
	if len(fields) < 2 || len(fields) > 3 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, desc)
	}
	distance, err := strconv.Atoi(fields[0])
	if err != nil || distance <= 0 {
		return Key{}, fmt.Errorf("%w: %q: bad distance", ErrInvalidKey, desc)
	}
	stroke, err := model.ParseStroke(fields[1])
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q: %v", ErrInvalidKey, desc, err)
	}
	relay := false
	if len(fields) == 3 {
		if !strings.EqualFold(fields[2], "Relay") {
			return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, desc)
		}
		relay = true
	}

	return Key{Gender: g, Distance: distance, Stroke: stroke, Course: course, Relay: relay}, nil
}
