package meetfile_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/meetscore/internal/adapters/meetfile"
	"github.com/okian/meetscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleMeet = `
meet:
  name: Spring Home Meet
  date: 2025-03-22
  events:
    "12":
      gender: female
      distance: 100
      stroke: freestyle
      course: SCY
      entries:
        - swimmers:
            - {first_name: Ada, middle_initial: B, last_name: Byron, age: 15}
          prelim_time: null
          swimoff_time: 0
          finals_time: "1:02.34"
        - swimmers:
            - {first_name: Grace, last_name: Hopper, age: 16}
          finals_time: 58.9
        - swimmers:
            - {first_name: Mary, last_name: Somerville, age: 15}
          finals_time: DQ
    "13":
      gender: M
      distance: 200
      stroke: medley
      course: Y
      relay: true
      entries:
        - swimmers:
            - {first_name: Lead, last_name: Off}
            - {first_name: Second, last_name: Leg}
          finals_time: 110.5
`

func TestDecode(t *testing.T) {
	Convey("Given a well-formed meet document", t, func() {
		meet, err := meetfile.Decode(strings.NewReader(sampleMeet))
		So(err, ShouldBeNil)

		Convey("Then meet metadata is read", func() {
			So(meet.Name, ShouldEqual, "Spring Home Meet")
			So(meet.Date.Year(), ShouldEqual, 2025)
			So(meet.Date.Month(), ShouldEqual, time.March)
			So(meet.Date.Day(), ShouldEqual, 22)
		})

		Convey("Then events keep file order and their identifiers", func() {
			So(meet.Events, ShouldHaveLength, 2)
			So(meet.Events[0].ID, ShouldEqual, "12")
			So(meet.Events[0].Name(), ShouldEqual, "Women's 100 Freestyle (SCY)")
			So(meet.Events[1].ID, ShouldEqual, "13")
			So(meet.Events[1].Name(), ShouldEqual, "Men's 200 Medley Relay (SCY)")
		})

		Convey("Then times are parsed from every notation", func() {
			entries := meet.Events[0].Entries
			So(entries[0].PrelimTime.Valid(), ShouldBeFalse)
			So(entries[0].SwimoffTime.Valid(), ShouldBeFalse)
			So(entries[0].FinalsTime.Seconds(), ShouldAlmostEqual, 62.34, 1e-9)
			So(entries[1].FinalsTime.Seconds(), ShouldEqual, 58.9)
			So(entries[2].FinalsTime.Valid(), ShouldBeFalse)
		})

		Convey("Then swimmers are kept in order", func() {
			relay := meet.Events[1].Entries[0]
			So(relay.Swimmers, ShouldHaveLength, 2)
			So(relay.Swimmers[0].FullName(), ShouldEqual, "Lead Off")
			So(meet.Events[0].Entries[0].Swimmers[0], ShouldResemble, model.Swimmer{
				FirstName: "Ada", MiddleInitial: "B", LastName: "Byron", Age: 15,
			})
		})
	})

	Convey("Given events written as a JSON list", t, func() {
		doc := `{"meet": {"name": "Dual", "events": [
			{"gender": "women", "distance": 50, "stroke": "fly", "course": "LCM",
			 "entries": [{"swimmers": [{"first_name": "A", "last_name": "B"}], "finals_time": 30.1}]}
		]}}`

		meet, err := meetfile.Decode(strings.NewReader(doc))

		Convey("Then events get positional identifiers", func() {
			So(err, ShouldBeNil)
			So(meet.Events, ShouldHaveLength, 1)
			So(meet.Events[0].ID, ShouldEqual, "1")
			So(meet.Events[0].Name(), ShouldEqual, "Women's 50 Butterfly (LCM)")
			So(meet.Date.IsZero(), ShouldBeTrue)
		})
	})

	Convey("Given invalid meet documents", t, func() {
		cases := map[string]string{
			"unknown stroke": `
meet:
  events:
    "1": {gender: M, distance: 100, stroke: sidestroke, course: SCY}
`,
			"zero distance": `
meet:
  events:
    "1": {gender: M, distance: 0, stroke: free, course: SCY}
`,
			"negative time": `
meet:
  events:
    "1":
      {gender: M, distance: 100, stroke: free, course: SCY,
       entries: [{swimmers: [{first_name: A, last_name: B}], finals_time: -3}]}
`,
			"infinite time": `
meet:
  events:
    "1":
      {gender: M, distance: 100, stroke: free, course: SCY,
       entries: [{swimmers: [{first_name: A, last_name: B}], finals_time: Infinity}]}
`,
			"no swimmers": `
meet:
  events:
    "1":
      {gender: M, distance: 100, stroke: free, course: SCY,
       entries: [{swimmers: [], finals_time: 50}]}
`,
			"negative age": `
meet:
  events:
    "1":
      {gender: M, distance: 100, stroke: free, course: SCY,
       entries: [{swimmers: [{first_name: A, last_name: B, age: -1}], finals_time: 50}]}
`,
			"bad date": `
meet:
  date: not a date at all
`,
			"scalar events": `
meet:
  events: 12
`,
			"broken yaml": `meet: [`,
		}

		for name, doc := range cases {
			Convey("When the document has "+name, func() {
				_, err := meetfile.Decode(strings.NewReader(doc))
				So(errors.Is(err, meetfile.ErrInvalidMeet), ShouldBeTrue)
			})
		}
	})

	Convey("Given a document with several problems", t, func() {
		doc := `
meet:
  events:
    "1": {gender: robot, distance: -5, stroke: free, course: SCY}
`
		_, err := meetfile.Decode(strings.NewReader(doc))

		Convey("Then every problem is reported", func() {
			So(errors.Is(err, meetfile.ErrInvalidMeet), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "gender")
			So(err.Error(), ShouldContainSubstring, "distance")
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a meet file on disk", t, func() {
		path := filepath.Join(t.TempDir(), "meet.yaml")
		So(os.WriteFile(path, []byte(sampleMeet), 0o600), ShouldBeNil)

		Convey("Then it loads", func() {
			meet, err := meetfile.Load(path)
			So(err, ShouldBeNil)
			So(meet.Events, ShouldHaveLength, 2)
		})
	})

	Convey("Given a missing meet file", t, func() {
		_, err := meetfile.Load(filepath.Join(t.TempDir(), "missing.yaml"))

		Convey("Then the open error is returned", func() {
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
		})
	})
}
