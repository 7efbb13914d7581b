package chatcli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/okian/gradebot/pkg/logger"
)

// NewCommand builds the chat command.
func NewCommand() *cobra.Command {
	cfg := &Config{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the student grade predictor",
		Long: "Chat with the student grade predictor from the terminal. Type scores such as\n" +
			"'math: 85 science: 90', then 'predict my grade'. Say 'bye' to leave.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			if cfg.Verbose {
				logger.SetLevel(slog.LevelDebug)
			} else {
				logger.SetLevel(slog.LevelWarn)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var conv Conversation
			if cfg.Local {
				conv = NewLocalConversation()
			} else {
				remote, err := NewRemoteConversation(ctx, cfg)
				if err != nil {
					return err
				}
				logger.Named("chatcli").Debug(ctx, "session opened",
					logger.String("url", cfg.BaseURL),
					logger.String("sessionID", remote.SessionID()),
				)
				conv = remote
			}
			defer func() {
				if err := conv.Close(ctx); err != nil {
					logger.Named("chatcli").Warn(ctx, "failed to close session", logger.Error(err))
				}
			}()

			return Run(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), conv)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", DefaultBaseURL, "Base URL of the service")
	flags.BoolVar(&cfg.Local, "local", false, "Answer in-process without a server")
	flags.BoolVar(&cfg.Summary, "summary", false, "Print the current scores and predicted grade on exit")
	flags.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "HTTP request timeout")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
