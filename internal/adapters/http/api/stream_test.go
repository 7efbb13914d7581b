package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/gradebot/internal/domain/types"
)

type frame struct {
	Reply *types.Reply `json:"reply"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestStreamAPI(t *testing.T) {
	Convey("Given a running server with one session", t, func() {
		mux, svc := newTestMux()
		defer svc.Stop()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		view := decode[types.SessionView](do(mux, http.MethodPost, "/sessions", ""))
		wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + view.ID + "/stream"

		Convey("When a client streams turns", func() {
			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			So(err, ShouldBeNil)
			defer conn.Close()
			_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

			send := func(body map[string]string) frame {
				So(conn.WriteJSON(body), ShouldBeNil)
				var f frame
				So(conn.ReadJSON(&f), ShouldBeNil)
				return f
			}

			first := send(map[string]string{"text": "math: 70 science: 90", "message_id": "1"})
			dup := send(map[string]string{"text": "math: 70 science: 90", "message_id": "1"})
			empty := send(map[string]string{"text": ""})
			pred := send(map[string]string{"text": "predict my grade"})

			Convey("Then every frame should be answered like the REST route", func() {
				So(first.Reply, ShouldNotBeNil)
				So(first.Reply.Intent, ShouldEqual, "provide_scores")
				So(dup.Error, ShouldNotBeNil)
				So(dup.Error.Code, ShouldEqual, "duplicate")
				So(empty.Error.Code, ShouldEqual, "bad_request")
				So(pred.Reply.Grade.Letter, ShouldEqual, "B")
			})

			Convey("And an exit reply should close the stream", func() {
				bye := send(map[string]string{"text": "bye"})
				So(bye.Reply.Intent, ShouldEqual, "exit")

				_, _, err := conn.ReadMessage()
				So(websocket.IsCloseError(err, websocket.CloseNormalClosure), ShouldBeTrue)
			})

			Convey("And the turns should be in the session transcript", func() {
				got, err := svc.Session(context.Background(), view.ID)
				So(err, ShouldBeNil)
				So(len(got.Transcript), ShouldEqual, 4)
			})
		})

		Convey("When the session does not exist", func() {
			_, resp, err := websocket.DefaultDialer.Dial(
				"ws"+strings.TrimPrefix(srv.URL, "http")+"/sessions/nope/stream", nil)

			Convey("Then the upgrade should be refused with 404", func() {
				So(err, ShouldNotBeNil)
				So(resp, ShouldNotBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}
