package model_test

import (
	"testing"

	model "github.com/okian/meetscore/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestEventNames(t *testing.T) {
	convey.Convey("Given an individual event", t, func() {
		event := model.Event{
			Gender:   model.GenderFemale,
			Distance: 100,
			Stroke:   model.StrokeFreestyle,
			Course:   model.CourseSCY,
		}

		convey.Convey("Then its display name carries the gender prefix", func() {
			convey.So(event.Name(), convey.ShouldEqual, "Women's 100 Freestyle (SCY)")
			convey.So(event.Description(), convey.ShouldEqual, "100 Freestyle (SCY)")
		})

		convey.Convey("Then its code follows the stroke/distance/course layout", func() {
			code, ok := event.Code()
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(code, convey.ShouldEqual, "1100Y")
		})
	})

	convey.Convey("Given relay events", t, func() {
		free := model.Event{Gender: model.GenderMale, Distance: 200, Stroke: model.StrokeFreestyle, Course: model.CourseLCM, Relay: true}
		medley := model.Event{Gender: model.GenderMixed, Distance: 200, Stroke: model.StrokeMedley, Course: model.CourseSCM, Relay: true}

		convey.Convey("Then names are marked as relays", func() {
			convey.So(free.Name(), convey.ShouldEqual, "Men's 200 Freestyle Relay (LCM)")
			convey.So(medley.Name(), convey.ShouldEqual, "Mixed 200 Medley Relay (SCM)")
		})

		convey.Convey("Then relay stroke codes are used", func() {
			code, _ := free.Code()
			convey.So(code, convey.ShouldEqual, "6200L")
			code, _ = medley.Code()
			convey.So(code, convey.ShouldEqual, "7200S")
		})
	})

	convey.Convey("Given an event with an unknown course", t, func() {
		event := model.Event{Gender: model.GenderMale, Distance: 50, Stroke: model.StrokeButterfly}

		convey.Convey("Then no code is produced", func() {
			_, ok := event.Code()
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestParseEnums(t *testing.T) {
	convey.Convey("Given textual enum values", t, func() {
		convey.Convey("When parsing genders", func() {
			g, err := model.ParseGender("F")
			convey.So(err, convey.ShouldBeNil)
			convey.So(g, convey.ShouldEqual, model.GenderFemale)

			g, err = model.ParseGender(" Men ")
			convey.So(err, convey.ShouldBeNil)
			convey.So(g, convey.ShouldEqual, model.GenderMale)

			_, err = model.ParseGender("robots")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When parsing strokes", func() {
			s, err := model.ParseStroke("fly")
			convey.So(err, convey.ShouldBeNil)
			convey.So(s, convey.ShouldEqual, model.StrokeButterfly)

			s, err = model.ParseStroke("IM")
			convey.So(err, convey.ShouldBeNil)
			convey.So(s, convey.ShouldEqual, model.StrokeMedley)

			_, err = model.ParseStroke("doggy paddle")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When parsing courses", func() {
			c, err := model.ParseCourse("y")
			convey.So(err, convey.ShouldBeNil)
			convey.So(c, convey.ShouldEqual, model.CourseSCY)

			c, err = model.ParseCourse("LCM")
			convey.So(err, convey.ShouldBeNil)
			convey.So(c, convey.ShouldEqual, model.CourseLCM)

			_, err = model.ParseCourse("pond")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestSwimmerFullName(t *testing.T) {
	convey.Convey("Given swimmers with and without a middle initial", t, func() {
		convey.So(model.Swimmer{FirstName: "Katie", MiddleInitial: "K", LastName: "Ledecky"}.FullName(),
			convey.ShouldEqual, "Katie K Ledecky")
		convey.So(model.Swimmer{FirstName: "Caeleb", LastName: "Dressel"}.FullName(),
			convey.ShouldEqual, "Caeleb Dressel")
		convey.So(model.Swimmer{FirstName: "Regan", MiddleInitial: " ", LastName: "Smith"}.FullName(),
			convey.ShouldEqual, "Regan Smith")
	})
}
