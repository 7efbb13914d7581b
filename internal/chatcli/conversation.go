// Package chatcli runs the grade chatbot as an interactive console program,
// either against a running server or in-process.
package chatcli

import (
	"context"

	"github.com/okian/gradebot/internal/domain/chat"
	"github.com/okian/gradebot/internal/domain/model"
	"github.com/okian/gradebot/internal/domain/types"
)

// Conversation is one chat session as seen by the console loop.
type Conversation interface {
	Send(ctx context.Context, text string) (types.Reply, error)
	Summary(ctx context.Context) (types.Summary, error)
	Close(ctx context.Context) error
}

// LocalConversation answers turns in-process over a private session.
type LocalConversation struct {
	sess *model.Session
}

// NewLocalConversation creates an in-process conversation.
func NewLocalConversation() *LocalConversation {
	return &LocalConversation{sess: model.NewSession("local")}
}

// Send implements Conversation.Send.
func (c *LocalConversation) Send(_ context.Context, text string) (types.Reply, error) {
	return types.NewReply(c.sess.ID, chat.Turn(c.sess, text)), nil
}

// Summary implements Conversation.Summary.
func (c *LocalConversation) Summary(_ context.Context) (types.Summary, error) {
	return types.NewSummary(c.sess.Scores), nil
}

// Close implements Conversation.Close.
func (c *LocalConversation) Close(_ context.Context) error { return nil }
