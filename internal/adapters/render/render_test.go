package render_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/meetscore/internal/adapters/render"
	"github.com/okian/meetscore/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

func sampleReport() *types.Report {
	return &types.Report{
		RunID: "run-1",
		Meet:  "Spring Home Meet",
		Events: []types.EventReport{
			{
				Event:  "Women's 100 Freestyle (SCY)",
				Gender: "Women",
				Results: []types.Scored{
					{Swimmer: "Grace Hopper", Time: 57.34, Score: 650},
					{Swimmer: "Ada B Byron", Time: 61.2, Score: 487.5},
				},
				Skipped: 1,
			},
			{
				Event:  "Men's 50 Butterfly (SCY)",
				Gender: "Men",
				Err:    errors.New("no reference data for event"),
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	Convey("Given format names", t, func() {
		f, err := render.ParseFormat(" YAML ")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, render.FormatYAML)

		_, err = render.ParseFormat("xml")
		So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)

		_, err = render.New(render.Format("csv"))
		So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)
	})
}

func TestTextRenderer(t *testing.T) {
	Convey("Given the text renderer", t, func() {
		r, err := render.New(render.FormatText)
		So(err, ShouldBeNil)

		Convey("When rendering a report", func() {
			var buf bytes.Buffer
			So(r.Report(&buf, sampleReport()), ShouldBeNil)

			Convey("Then each scored result is one line", func() {
				So(buf.String(), ShouldEqual,
					"Swimmer: Grace Hopper, Time: 57.34, Score: 650\n"+
						"Swimmer: Ada B Byron, Time: 61.2, Score: 487.5\n")
			})
		})

		Convey("When rendering rankings", func() {
			var buf bytes.Buffer
			err := r.Rankings(&buf, []types.EventRanking{{
				Event: "Women's 100 Freestyle (SCY)",
				Placings: []types.Placing{
					{Place: 1, Swimmer: "Grace Hopper", Age: 16, FinalTime: 57.34},
					{Swimmer: "Mary Somerville", Age: 15},
				},
			}})
			So(err, ShouldBeNil)

			Convey("Then the event header and placings are printed", func() {
				out := buf.String()
				So(out, ShouldStartWith, "Women's 100 Freestyle (SCY)\n")
				So(out, ShouldContainSubstring, "   1  Grace Hopper")
				So(out, ShouldContainSubstring, "57.34")
				So(out, ShouldContainSubstring, "   -  Mary Somerville")
				So(out, ShouldContainSubstring, "NT")
			})
		})
	})
}

func TestStructuredRenderers(t *testing.T) {
	Convey("Given the JSON renderer", t, func() {
		r, _ := render.New(render.FormatJSON)
		var buf bytes.Buffer
		So(r.Report(&buf, sampleReport()), ShouldBeNil)

		Convey("Then the report round-trips with event errors as strings", func() {
			var got types.Report
			So(json.Unmarshal(buf.Bytes(), &got), ShouldBeNil)
			So(got.RunID, ShouldEqual, "run-1")
			So(got.Events[0].Results, ShouldHaveLength, 2)
			So(got.Events[1].Error, ShouldEqual, "no reference data for event")
			So(got.Events[1].Results, ShouldBeEmpty)
		})
	})

	Convey("Given the YAML renderer", t, func() {
		r, _ := render.New(render.FormatYAML)
		var buf bytes.Buffer
		So(r.Report(&buf, sampleReport()), ShouldBeNil)

		Convey("Then the report decodes back", func() {
			var got types.Report
			So(yaml.Unmarshal(buf.Bytes(), &got), ShouldBeNil)
			So(got.Meet, ShouldEqual, "Spring Home Meet")
			So(got.Events[0].Results[1].Score, ShouldEqual, 487.5)
			So(got.Events[1].Error, ShouldEqual, "no reference data for event")
		})
	})
}

func TestLazyFile(t *testing.T) {
	Convey("Given a lazy file", t, func() {
		path := filepath.Join(t.TempDir(), "out.txt")
		f := render.NewLazyFile(path)

		Convey("When nothing is written", func() {
			So(f.Close(), ShouldBeNil)

			Convey("Then no file is created", func() {
				_, err := os.Stat(path)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})

		Convey("When data is written", func() {
			_, err := f.Write([]byte("hello"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			Convey("Then the file holds the data", func() {
				body, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(body), ShouldEqual, "hello")
			})
		})
	})
}
