package intent_test

import (
	"testing"

	"github.com/okian/gradebot/internal/domain/intent"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given user input lines", t, func() {
		cases := []struct {
			text string
			want intent.Intent
		}{
			{"hello there", intent.Greeting},
			{"Hey!", intent.Greeting},
			{"math: 80 english: 90", intent.ProvideScores},
			{"hi, math: 80 english: 90", intent.ProvideScores},
			{"bye, physics: 40", intent.ProvideScores},
			{"please predict my grade", intent.Predict},
			{"PREDICT my GRADE", intent.Predict},
			{"predict the outcome", intent.Fallback},
			{"help", intent.Help},
			{"what can you do", intent.Help},
			{"how does it work", intent.Help},
			{"bye", intent.Exit},
			{"I want to quit", intent.Exit},
			{"exit", intent.Exit},
			{"asdkjh", intent.Fallback},
			{"", intent.Fallback},
		}

		for _, tc := range cases {
			Convey("When classifying "+`"`+tc.text+`"`, func() {
				So(intent.Classify(tc.text), ShouldEqual, tc.want)
			})
		}
	})

	Convey("Given keywords hidden inside other words", t, func() {
		Convey("Then substring matching should still apply", func() {
			// "which" contains "hi"; greeting outranks predict.
			So(intent.Classify("which grade will you predict"), ShouldEqual, intent.Greeting)
			// "show" contains "how".
			So(intent.Classify("show"), ShouldEqual, intent.Help)
			// "goodbye" contains "bye".
			So(intent.Classify("goodbye"), ShouldEqual, intent.Exit)
		})
	})

	Convey("Given the priority order", t, func() {
		Convey("Then greeting should beat predict and help", func() {
			So(intent.Classify("hello, help me predict my grade"), ShouldEqual, intent.Greeting)
		})

		Convey("And predict should beat help and exit", func() {
			So(intent.Classify("predict my grade then quit"), ShouldEqual, intent.Predict)
		})

		Convey("And help should beat exit", func() {
			So(intent.Classify("help me exit"), ShouldEqual, intent.Help)
		})

		Convey("And All should list intents in that order", func() {
			So(intent.All, ShouldResemble, []intent.Intent{
				intent.ProvideScores, intent.Greeting, intent.Predict,
				intent.Help, intent.Exit, intent.Fallback,
			})
		})
	})
}
