// Package meetfile reads meet results exported by the meet parser as YAML or
// JSON and turns them into validated domain models.
//
// Expected layout:
//
//	meet:
//	  name: Spring Home Meet
//	  date: 2025-03-22
//	  events:
//	    "12":
//	      gender: female
//	      distance: 100
//	      stroke: freestyle
//	      course: SCY
//	      relay: false
//	      entries:
//	        - swimmers:
//	            - {first_name: Ada, middle_initial: B, last_name: Byron, age: 15}
//	          prelim_time: null
//	          swimoff_time: 0
//	          finals_time: "1:02.34"
//
// events may also be a list whose items carry an id field.
package meetfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/araddon/dateparse"
	"github.com/okian/meetscore/internal/domain/model"
	"gopkg.in/yaml.v3"
)

type document struct {
	Meet meetDoc `yaml:"meet"`
}

type meetDoc struct {
	Name   string    `yaml:"name"`
	Date   string    `yaml:"date"`
	Events yaml.Node `yaml:"events"`
}

type eventDoc struct {
	ID       string     `yaml:"id"`
	Gender   string     `yaml:"gender"`
	Distance int        `yaml:"distance"`
	Stroke   string     `yaml:"stroke"`
	Course   string     `yaml:"course"`
	Relay    bool       `yaml:"relay"`
	Entries  []entryDoc `yaml:"entries"`
}

type entryDoc struct {
	Swimmers    []swimmerDoc `yaml:"swimmers"`
	PrelimTime  swimTime     `yaml:"prelim_time"`
	SwimoffTime swimTime     `yaml:"swimoff_time"`
	FinalsTime  swimTime     `yaml:"finals_time"`
}

type swimmerDoc struct {
	FirstName     string `yaml:"first_name"`
	MiddleInitial string `yaml:"middle_initial"`
	LastName      string `yaml:"last_name"`
	Age           int    `yaml:"age"`
}

// swimTime accepts numbers, clock strings and no-time markers.
type swimTime struct {
	value model.SwimTime
	err   error
}

func (t *swimTime) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		t.err = fmt.Errorf("%w: line %d", model.ErrInvalidTime, n.Line)
		return nil
	}
	if n.ShortTag() == "!!null" {
		return nil
	}
	t.value, t.err = model.ParseSwimTime(n.Value)
	return nil
}

// Load reads and validates the meet file at path.
func Load(path string) (*model.Meet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open meet file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and validates a meet document from r.
func Decode(r io.Reader) (*model.Meet, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMeet, err)
	}

	events, err := decodeEvents(&doc.Meet.Events)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMeet, err)
	}

	meet := &model.Meet{Name: doc.Meet.Name}
	var problems []error
	if doc.Meet.Date != "" {
		d, err := dateparse.ParseAny(doc.Meet.Date)
		if err != nil {
			problems = append(problems, fmt.Errorf("meet date %q: %w", doc.Meet.Date, err))
		}
		meet.Date = d
	}

	for _, ed := range events {
		event, errs := convertEvent(ed)
		problems = append(problems, errs...)
		meet.Events = append(meet.Events, event)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMeet, errors.Join(problems...))
	}
	return meet, nil
}

func decodeEvents(n *yaml.Node) ([]eventDoc, error) {
	var events []eventDoc
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			var ed eventDoc
			if err := n.Content[i+1].Decode(&ed); err != nil {
				return nil, fmt.Errorf("event %s: %w", n.Content[i].Value, err)
			}
			ed.ID = n.Content[i].Value
			events = append(events, ed)
		}
	case yaml.SequenceNode:
		for i, item := range n.Content {
			var ed eventDoc
			if err := item.Decode(&ed); err != nil {
				return nil, fmt.Errorf("event #%d: %w", i+1, err)
			}
			if ed.ID == "" {
				ed.ID = strconv.Itoa(i + 1)
			}
			events = append(events, ed)
		}
	default:
		return nil, fmt.Errorf("events must be a mapping or a list (line %d)", n.Line)
	}
	return events, nil
}

func convertEvent(ed eventDoc) (model.Event, []error) {
	var problems []error
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf("event %s: "+format, append([]any{ed.ID}, args...)...))
	}

	event := model.Event{ID: ed.ID, Distance: ed.Distance, Relay: ed.Relay}
	var err error
	if event.Gender, err = model.ParseGender(ed.Gender); err != nil {
		fail("%v", err)
	}
	if event.Stroke, err = model.ParseStroke(ed.Stroke); err != nil {
		fail("%v", err)
	}
	if event.Course, err = model.ParseCourse(ed.Course); err != nil {
		fail("%v", err)
	}
	if ed.Distance <= 0 {
		fail("distance must be positive, got %d", ed.Distance)
	}

	for i, en := range ed.Entries {
		entry := model.Entry{
			PrelimTime:  en.PrelimTime.value,
			SwimoffTime: en.SwimoffTime.value,
			FinalsTime:  en.FinalsTime.value,
		}
		for _, t := range []swimTime{en.PrelimTime, en.SwimoffTime, en.FinalsTime} {
			if t.err != nil {
				fail("entry %d: %v", i+1, t.err)
			}
		}
		if len(en.Swimmers) == 0 {
			fail("entry %d: no swimmers", i+1)
		}
		for _, sd := range en.Swimmers {
			if sd.Age < 0 {
				fail("entry %d: negative age %d", i+1, sd.Age)
			}
			entry.Swimmers = append(entry.Swimmers, model.Swimmer{
				FirstName:     sd.FirstName,
				MiddleInitial: sd.MiddleInitial,
				LastName:      sd.LastName,
				Age:           sd.Age,
			})
		}
		event.Entries = append(event.Entries, entry)
	}
	return event, problems
}
