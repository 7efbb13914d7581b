package chatcli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/okian/gradebot/internal/domain/chat"
	"github.com/okian/gradebot/internal/domain/intent"
	"github.com/okian/gradebot/internal/domain/types"
	"github.com/okian/gradebot/pkg/logger"
)

// Console prompts and banner.
const (
	Prompt    = "you> "
	BotPrefix = "bot> "
	Tagline   = "This program will help you predict your final grade."
)

// Run reads lines from in, answers each through conv and writes the
// replies to out. It returns after an exit reply, at end of input or when
// ctx is done.
func Run(ctx context.Context, cfg *Config, in io.Reader, out io.Writer, conv Conversation) error {
	log := logger.Named("chatcli")

	fmt.Fprintln(out, chat.WelcomeText)
	fmt.Fprintln(out, Tagline)
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprint(out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		reply, err := conv.Send(ctx, line)
		if err != nil {
			return fmt.Errorf("send: %w", err)
		}
		log.Debug(ctx, "turn answered",
			logger.String("intent", reply.Intent),
			logger.Int("recorded", len(reply.Recorded)),
		)
		fmt.Fprintln(out, BotPrefix+plain(reply.Text))

		if reply.Intent == string(intent.Exit) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if cfg.Summary {
		sum, err := conv.Summary(ctx)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, FormatSummary(sum))
	}
	return nil
}

// FormatSummary renders the current scores and predicted grade as text.
func FormatSummary(sum types.Summary) string {
	var b strings.Builder
	b.WriteString("Current Scores\n")
	if len(sum.Scores) == 0 {
		b.WriteString("  No scores recorded yet.\n")
		return b.String()
	}
	for _, line := range sum.Scores {
		fmt.Fprintf(&b, "  %s: %d\n", line.Subject, line.Score)
	}
	if sum.Grade != nil {
		fmt.Fprintf(&b, "Predicted Grade: %s\n", sum.Grade.Letter)
		fmt.Fprintf(&b, "Average: %.1f%%\n", sum.Grade.Average)
	}
	return b.String()
}

// plain drops the bold markers used by the web page.
func plain(text string) string {
	return strings.ReplaceAll(text, "**", "")
}
