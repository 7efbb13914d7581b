package grading_test

import (
	"testing"

	"github.com/okian/gradebot/internal/domain/grading"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCalculate(t *testing.T) {
	Convey("Given recorded scores", t, func() {
		cases := []struct {
			name    string
			scores  map[string]int
			letter  grading.Letter
			average float64
		}{
			{"two nineties", map[string]int{"math": 90, "english": 90}, grading.A, 90.0},
			{"single fail", map[string]int{"math": 59}, grading.F, 59.0},
			{"boundary at seventy", map[string]int{"math": 60, "english": 80}, grading.C, 70.0},
			{"eighty average", map[string]int{"math": 70, "science": 90}, grading.B, 80.0},
			{"exact sixty", map[string]int{"art": 60}, grading.D, 60.0},
			{"fractional average", map[string]int{"a": 89, "b": 90}, grading.B, 89.5},
			{"zero score", map[string]int{"pe": 0}, grading.F, 0.0},
			{"perfect", map[string]int{"math": 100, "art": 100, "pe": 100}, grading.A, 100.0},
		}

		for _, tc := range cases {
			Convey("When the case is "+tc.name, func() {
				res, ok := grading.Calculate(tc.scores)

				Convey("Then the letter and average should match", func() {
					So(ok, ShouldBeTrue)
					So(res.Letter, ShouldEqual, tc.letter)
					So(res.Average, ShouldAlmostEqual, tc.average, 1e-9)
				})
			})
		}
	})

	Convey("Given no scores", t, func() {
		Convey("When calculating from an empty map", func() {
			res, ok := grading.Calculate(map[string]int{})

			Convey("Then it should report no data", func() {
				So(ok, ShouldBeFalse)
				So(res, ShouldResemble, grading.Result{})
			})
		})

		Convey("When calculating from a nil map", func() {
			_, ok := grading.Calculate(nil)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestLetterFor(t *testing.T) {
	Convey("Given averages around each threshold", t, func() {
		So(grading.LetterFor(90), ShouldEqual, grading.A)
		So(grading.LetterFor(89.99), ShouldEqual, grading.B)
		So(grading.LetterFor(80), ShouldEqual, grading.B)
		So(grading.LetterFor(79.9), ShouldEqual, grading.C)
		So(grading.LetterFor(70), ShouldEqual, grading.C)
		So(grading.LetterFor(69.5), ShouldEqual, grading.D)
		So(grading.LetterFor(60), ShouldEqual, grading.D)
		So(grading.LetterFor(59.99), ShouldEqual, grading.F)
		So(grading.LetterFor(250), ShouldEqual, grading.A)
	})
}
