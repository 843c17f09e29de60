package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mDuo13/txsplain/internal/bot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the chat bot",
	Long: `Run the chat bot. It answers any message that starts with a transaction
hash (optionally followed by "verbose") and the explain command, e.g.
"!explain ~bitstamp". Set bot.token or TXSPLAIN_BOT_TOKEN.`,
	Args: cobra.NoArgs,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	if cfg.Bot.Token == "" {
		return fmt.Errorf("bot.token is not set")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// ctx is already done here.
		if err := a.Close(cmd.Context()); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	b, err := bot.New(bot.Config{
		Token:         cfg.Bot.Token,
		CommandPrefix: cfg.Bot.CommandPrefix,
		ChannelID:     cfg.Bot.ChannelID,
		ExplorerURL:   cfg.Bot.ExplorerURL,
		Timeout:       cfg.Bot.Timeout,
	}, a.explainer, logger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.Run(gctx) })
	if a.metrics != nil {
		g.Go(func() error { return a.metrics.Serve(gctx, cfg.Metrics.Listen, logger) })
	}
	return g.Wait()
}
