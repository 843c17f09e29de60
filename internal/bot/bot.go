// Package bot answers chat messages that carry transaction hashes or
// explain commands.
package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/lus/dgc"
	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/core/ledger"
	"github.com/mDuo13/txsplain/internal/query"
	"go.uber.org/zap"
)

// MessageLimit is the longest message the chat service accepts.
const MessageLimit = 2000

// hashPattern matches a message that opens with a transaction hash,
// optionally addressed to the bot and followed by "verbose".
var hashPattern = regexp.MustCompile(`(?i)^(<@!?\d+>:?\s+)?([0-9a-f]{64})(\s+verbose)?`)

// Explainer produces narratives.
type Explainer interface {
	Transaction(ctx context.Context, hash string, verbose bool) (string, error)
	Explain(ctx context.Context, q query.Query) (string, error)
}

type Config struct {
	Token         string
	CommandPrefix string
	// ChannelID restricts the bot to one channel when set.
	ChannelID string
	// ExplorerURL is prepended to the hash to link a transaction.
	ExplorerURL string
	// Timeout bounds each narration.
	Timeout time.Duration
}

type Bot struct {
	cfg       Config
	explainer Explainer
	logger    *zap.Logger

	session *discordgo.Session
	router  *dgc.Router
}

// New creates a bot session. Nothing connects until Run.
func New(cfg Config, explainer Explainer, logger *zap.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, errors.New("bot: token is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("bot: session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	b := &Bot{
		cfg:       cfg,
		explainer: explainer,
		logger:    logger.Named("bot"),
		session:   session,
	}
	b.router = dgc.Create(&dgc.Router{
		Prefixes:         []string{cfg.CommandPrefix},
		IgnorePrefixCase: true,
		Storage:          make(map[string]*dgc.ObjectsMap),
	})
	b.registerCommands()
	return b, nil
}

func (b *Bot) registerCommands() {
	b.router.RegisterCmd(&dgc.Command{
		Name:        "explain",
		Description: "Explain a transaction, account, trust line or offer",
		Usage:       "explain <hash | address | ~alias> [counterparty currency | sequence] [verbose]",
		Example:     "explain ~bitstamp 42",
		IgnoreCase:  true,
		Handler:     b.handleExplain,
	})
	b.router.RegisterDefaultHelpCommand(b.session, nil)
}

// Run connects and serves until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(b.onMessage)
	b.router.Initialize(b.session)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("bot: open: %w", err)
	}
	b.logger.Info("bot connected", zap.String("prefix", b.cfg.CommandPrefix))

	<-ctx.Done()
	if err := b.session.Close(); err != nil {
		b.logger.Warn("bot close", zap.Error(err))
	}
	return nil
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	if !b.watching(m.ChannelID) {
		return
	}
	if strings.HasPrefix(strings.ToLower(m.Content), strings.ToLower(b.cfg.CommandPrefix)) {
		return
	}
	hash, verbose, ok := MatchHash(m.Content)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.Timeout)
	defer cancel()
	b.send(m.ChannelID, b.TransactionReply(ctx, hash, verbose))
}

func (b *Bot) handleExplain(c *dgc.Ctx) {
	if !b.watching(c.Event.ChannelID) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.Timeout)
	defer cancel()
	b.send(c.Event.ChannelID, b.QueryReply(ctx, c.Arguments.Raw()))
}

func (b *Bot) watching(channelID string) bool {
	return b.cfg.ChannelID == "" || b.cfg.ChannelID == channelID
}

func (b *Bot) send(channelID, text string) {
	for _, part := range Split(text, MessageLimit) {
		if _, err := b.session.ChannelMessageSend(channelID, part); err != nil {
			b.logger.Warn("send failed", zap.String("channel", channelID), zap.Error(err))
			return
		}
	}
}

// MatchHash reports whether content asks for a transaction.
func MatchHash(content string) (hash string, verbose bool, ok bool) {
	m := hashPattern.FindStringSubmatch(strings.TrimSpace(content))
	if m == nil {
		return "", false, false
	}
	return strings.ToUpper(m[2]), m[3] != "", true
}

// TransactionReply is the message posted for a watched hash: an explorer
// link followed by the narrative.
func (b *Bot) TransactionReply(ctx context.Context, hash string, verbose bool) string {
	text, err := b.explainer.Transaction(ctx, hash, verbose)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return fmt.Sprintf("Couldn't find transaction %s.", hash)
		}
		b.logger.Error("explain transaction", zap.String("hash", hash), zap.Error(err))
		return fmt.Sprintf("Couldn't look up transaction %s right now.", hash)
	}
	return b.cfg.ExplorerURL + hash + "\n" + text
}

// QueryReply answers an explain command.
func (b *Bot) QueryReply(ctx context.Context, input string) string {
	q, err := query.Parse(input)
	if err != nil {
		return fmt.Sprintf("I don't know what %q refers to. Try a transaction hash, an address, ~alias, a trust line (two accounts and a currency) or an offer (account and sequence).", strings.TrimSpace(input))
	}
	if q.Kind == query.KindTransaction {
		return b.TransactionReply(ctx, q.Hash, q.Verbose)
	}

	text, err := b.explainer.Explain(ctx, q)
	switch {
	case err == nil:
		return text
	case alias.IsNotFound(err):
		return fmt.Sprintf("Couldn't resolve an alias in %q.", strings.TrimSpace(input))
	case errors.Is(err, ledger.ErrNotFound):
		return fmt.Sprintf("Couldn't find that %s.", q.Kind)
	}
	b.logger.Error("explain query", zap.Stringer("kind", q.Kind), zap.Error(err))
	return fmt.Sprintf("Couldn't look up that %s right now.", q.Kind)
}

// Split breaks text into messages of at most limit bytes, cutting on line
// boundaries where it can.
func Split(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var parts []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, strings.TrimSuffix(cur.String(), "\n"))
			cur.Reset()
		}
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			flush()
			cut := runeCut(line, limit)
			parts = append(parts, line[:cut])
			line = line[cut:]
		}
		if cur.Len()+len(line) > limit {
			flush()
		}
		cur.WriteString(line)
	}
	flush()
	return parts
}

// runeCut backs limit off to the start of a rune.
func runeCut(s string, limit int) int {
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return limit
	}
	return cut
}
