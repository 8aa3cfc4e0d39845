package ranking_test

import (
	"testing"

	"github.com/okian/meetscore/internal/domain/model"
	"github.com/okian/meetscore/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func finals(entries []model.ResultEntry) []model.SwimTime {
	out := make([]model.SwimTime, len(entries))
	for i, e := range entries {
		out[i] = e.FinalTime
	}
	return out
}

func TestRank(t *testing.T) {
	Convey("Given entries with missing, zero and genuine final times", t, func() {
		entries := []model.ResultEntry{
			{Swimmer: "missing"},
			{Swimmer: "slow", FinalTime: 55.0},
			{Swimmer: "zero", FinalTime: 0.0},
			{Swimmer: "fast", FinalTime: 50.0},
		}

		ranked := ranking.Rank(entries)

		Convey("Then genuine times come first in ascending order", func() {
			So(ranked[0].Swimmer, ShouldEqual, "fast")
			So(ranked[1].Swimmer, ShouldEqual, "slow")
		})

		Convey("Then untimed entries follow in their original order", func() {
			So(ranked[2].Swimmer, ShouldEqual, "missing")
			So(ranked[3].Swimmer, ShouldEqual, "zero")
		})

		Convey("And the input is left untouched", func() {
			So(entries[0].Swimmer, ShouldEqual, "missing")
			So(finals(entries), ShouldResemble, []model.SwimTime{0, 55, 0, 50})
		})
	})

	Convey("Given ties on final time", t, func() {
		entries := []model.ResultEntry{
			{Swimmer: "a", FinalTime: 60},
			{Swimmer: "b", FinalTime: 58},
			{Swimmer: "c", FinalTime: 60},
		}

		Convey("Then tied entries keep input order", func() {
			ranked := ranking.Rank(entries)
			So(ranked[0].Swimmer, ShouldEqual, "b")
			So(ranked[1].Swimmer, ShouldEqual, "a")
			So(ranked[2].Swimmer, ShouldEqual, "c")
		})
	})
}

func TestAggregate(t *testing.T) {
	Convey("Given a meet with two events", t, func() {
		women := model.Event{
			ID: "1", Gender: model.GenderFemale, Distance: 100, Stroke: model.StrokeFreestyle, Course: model.CourseSCY,
			Entries: []model.Entry{
				{Swimmers: []model.Swimmer{{FirstName: "Ada", LastName: "Byron", Age: 15}}, FinalsTime: 61.2},
				{Swimmers: []model.Swimmer{{FirstName: "Grace", MiddleInitial: "B", LastName: "Hopper", Age: 16}}, PrelimTime: 60.1, FinalsTime: 58.9},
				{Swimmers: nil, FinalsTime: 40},
			},
		}
		relay := model.Event{
			ID: "2", Gender: model.GenderMale, Distance: 200, Stroke: model.StrokeFreestyle, Course: model.CourseSCY, Relay: true,
			Entries: []model.Entry{
				{Swimmers: []model.Swimmer{{FirstName: "Lead", LastName: "Off"}, {FirstName: "Second", LastName: "Leg"}}, FinalsTime: 95.5},
			},
		}
		empty := model.Event{ID: "3", Gender: model.GenderMale, Distance: 50, Stroke: model.StrokeBackstroke, Course: model.CourseSCY}

		results := ranking.Aggregate([]model.Event{women, relay, empty})

		Convey("Then entries are grouped by display name and ranked", func() {
			list := results["Women's 100 Freestyle (SCY)"]
			So(list, ShouldHaveLength, 2)
			So(list[0].Swimmer, ShouldEqual, "Grace B Hopper")
			So(list[0].Age, ShouldEqual, 16)
			So(list[0].PrelimTime, ShouldEqual, model.SwimTime(60.1))
			So(list[1].Swimmer, ShouldEqual, "Ada Byron")
		})

		Convey("Then relays are listed under their first swimmer", func() {
			list := results["Men's 200 Freestyle Relay (SCY)"]
			So(list, ShouldHaveLength, 1)
			So(list[0].Swimmer, ShouldEqual, "Lead Off")
		})

		Convey("Then events without entries still appear", func() {
			list, ok := results["Men's 50 Backstroke (SCY)"]
			So(ok, ShouldBeTrue)
			So(list, ShouldBeEmpty)
		})

		Convey("Then names follow the meet order", func() {
			So(ranking.Names([]model.Event{women, relay, empty, women}), ShouldResemble, []string{
				"Women's 100 Freestyle (SCY)",
				"Men's 200 Freestyle Relay (SCY)",
				"Men's 50 Backstroke (SCY)",
			})
		})
	})
}

func TestPlacings(t *testing.T) {
	Convey("Given a ranked list with a tie and an untimed entry", t, func() {
		ranked := []model.ResultEntry{
			{Swimmer: "a", FinalTime: 50},
			{Swimmer: "b", FinalTime: 51},
			{Swimmer: "c", FinalTime: 51},
			{Swimmer: "d", FinalTime: 52},
			{Swimmer: "e"},
		}

		placings := ranking.Placings(ranked)

		Convey("Then tied swimmers share a place", func() {
			So(placings[0].Place, ShouldEqual, 1)
			So(placings[1].Place, ShouldEqual, 2)
			So(placings[2].Place, ShouldEqual, 2)
			So(placings[3].Place, ShouldEqual, 4)
		})

		Convey("Then untimed swimmers are unplaced", func() {
			So(placings[4].Place, ShouldEqual, 0)
			So(placings[4].Swimmer, ShouldEqual, "e")
		})
	})
}
