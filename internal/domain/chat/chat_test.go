package chat_test

import (
	"testing"

	"github.com/okian/gradebot/internal/domain/chat"
	"github.com/okian/gradebot/internal/domain/grading"
	"github.com/okian/gradebot/internal/domain/intent"
	"github.com/okian/gradebot/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestTurn(t *testing.T) {
	convey.Convey("Given a fresh session", t, func() {
		sess := model.NewSession("s-1")

		convey.Convey("When the user sends scores over several turns and asks for a prediction", func() {
			first := chat.Turn(sess, "math: 70")
			second := chat.Turn(sess, "science: 90")
			final := chat.Turn(sess, "predict my grade")

			convey.Convey("Then each score turn should be acknowledged", func() {
				convey.So(first.Intent, convey.ShouldEqual, intent.ProvideScores)
				convey.So(first.Text, convey.ShouldEqual,
					"Got it! I've recorded your scores: Math: 70. Say 'predict my grade' when you're ready.")
				convey.So(second.Intent, convey.ShouldEqual, intent.ProvideScores)
			})

			convey.Convey("And the prediction should be B with an 80.0 average", func() {
				convey.So(final.Intent, convey.ShouldEqual, intent.Predict)
				convey.So(final.Grade, convey.ShouldNotBeNil)
				convey.So(final.Grade.Letter, convey.ShouldEqual, grading.B)
				convey.So(final.Grade.Average, convey.ShouldEqual, 80.0)
				convey.So(final.Text, convey.ShouldEqual,
					"Your predicted grade is **B** with an average of **80.0%**. Keep going!")
			})

			convey.Convey("And the transcript should hold both sides of every turn", func() {
				convey.So(len(sess.Transcript), convey.ShouldEqual, 6)
				convey.So(sess.Transcript[0].Role, convey.ShouldEqual, model.RoleUser)
				convey.So(sess.Transcript[0].Text, convey.ShouldEqual, "math: 70")
				convey.So(sess.Transcript[5].Role, convey.ShouldEqual, model.RoleAssistant)
				convey.So(sess.Transcript[5].Text, convey.ShouldEqual, final.Text)
			})
		})

		convey.Convey("When a subject is sent twice", func() {
			chat.Turn(sess, "math: 40")
			chat.Turn(sess, "math: 100")

			convey.Convey("Then only the later value should be kept", func() {
				convey.So(sess.Scores, convey.ShouldResemble, model.ScoreRecord{"math": 100})
			})
		})

		convey.Convey("When asking for a prediction before any scores", func() {
			reply := chat.Turn(sess, "predict my grade")

			convey.Convey("Then the no-scores message should be returned", func() {
				convey.So(reply.Intent, convey.ShouldEqual, intent.Predict)
				convey.So(reply.Grade, convey.ShouldBeNil)
				convey.So(reply.Text, convey.ShouldEqual, chat.NoScoresText)
			})
		})

		convey.Convey("When sending several scores in one line", func() {
			reply := chat.Turn(sess, "hi! math: 85 science: 90")

			convey.Convey("Then they should be listed in typed order", func() {
				convey.So(reply.Intent, convey.ShouldEqual, intent.ProvideScores)
				convey.So(reply.Text, convey.ShouldEqual,
					"Got it! I've recorded your scores: Math: 85, Science: 90. Say 'predict my grade' when you're ready.")
				convey.So(len(reply.Recorded), convey.ShouldEqual, 2)
				convey.So(sess.Scores, convey.ShouldResemble, model.ScoreRecord{"math": 85, "science": 90})
			})
		})
	})
}

func TestRespond(t *testing.T) {
	convey.Convey("Given keyword intents", t, func() {
		sess := model.NewSession("s-2")

		convey.Convey("Then each should map to its canned reply", func() {
			convey.So(chat.Respond(sess, "hello there").Text, convey.ShouldEqual, chat.GreetingText)
			convey.So(chat.Respond(sess, "help").Text, convey.ShouldEqual, chat.HelpText)
			convey.So(chat.Respond(sess, "bye").Text, convey.ShouldEqual, chat.ExitText)
			convey.So(chat.Respond(sess, "asdkjh").Text, convey.ShouldEqual, chat.FallbackText)
		})

		convey.Convey("And none of them should touch the session", func() {
			chat.Respond(sess, "hello there")
			chat.Respond(sess, "bye")
			convey.So(sess.Scores, convey.ShouldBeEmpty)
			convey.So(sess.Transcript, convey.ShouldBeEmpty)
		})
	})

	convey.Convey("Given a computed grade", t, func() {
		text := chat.PredictionText(grading.Result{Letter: grading.C, Average: 70})
		convey.So(text, convey.ShouldEqual, "Your predicted grade is **C** with an average of **70.0%**. Keep going!")
	})
}
