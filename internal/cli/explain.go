package cli

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/core/ledger"
	"github.com/mDuo13/txsplain/internal/explain"
	"github.com/mDuo13/txsplain/internal/query"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	explainVerbose bool
	explainCurrent bool
)

var explainCmd = &cobra.Command{
	Use:   "explain <hash | address | ~alias> [counterparty currency | sequence] [verbose]",
	Short: "Explain a transaction, account, trust line or offer",
	Long: `Explain prints a plain-English narrative of one ledger record:

  txsplain explain <transaction hash>
  txsplain explain <address | ~alias>
  txsplain explain <address | ~alias> <address | ~alias> <currency>
  txsplain explain <address | ~alias> <offer sequence>

Adding "verbose" (or --verbose) lists the paths a payment could take and
every ledger node a transaction touched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().BoolVarP(&explainVerbose, "verbose", "v", false, "include paths and affected nodes")
	explainCmd.Flags().BoolVar(&explainCurrent, "current", false, "read accounts, trust lines and offers from the current open ledger instead of the last validated one")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	q, err := query.ParseArgs(args)
	if err != nil {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	}
	q.Verbose = q.Verbose || explainVerbose

	var opts []explain.Option
	if explainCurrent {
		opts = append(opts, explain.WithSelector(ledger.Current()))
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(ctx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	text, err := a.explainer.Explain(ctx, q)
	if err != nil {
		switch {
		case alias.IsNotFound(err):
			return fmt.Errorf("no account goes by that alias: %w", err)
		case errors.Is(err, ledger.ErrNotFound):
			return fmt.Errorf("couldn't find the %s: %w", q.Kind, err)
		}
		return err
	}
	return writeNarrative(cmd.OutOrStdout(), text)
}

var (
	aliasToken   = regexp.MustCompile(`~[A-Za-z0-9_.-]*[A-Za-z0-9_-]`)
	partiesTitle = "Parties involved:"
)

// writeNarrative highlights names and the preamble title on terminals.
func writeNarrative(w io.Writer, text string) error {
	if color.NoColor {
		_, err := io.WriteString(w, text)
		return err
	}
	name := color.New(color.FgCyan).SprintFunc()
	title := color.New(color.Bold).SprintFunc()

	text = aliasToken.ReplaceAllStringFunc(text, func(s string) string { return name(s) })
	if strings.HasPrefix(text, partiesTitle) {
		text = title(partiesTitle) + strings.TrimPrefix(text, partiesTitle)
	}
	_, err := io.WriteString(w, text)
	return err
}
