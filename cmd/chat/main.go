package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/gradebot/internal/chatcli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := chatcli.NewCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
