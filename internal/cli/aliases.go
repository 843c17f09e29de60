package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mDuo13/txsplain/internal/alias"
	"github.com/mDuo13/txsplain/internal/query"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Inspect and maintain the alias cache",
}

var aliasesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached aliases",
	Args:  cobra.NoArgs,
	RunE: withAliases(func(ctx context.Context, cmd *cobra.Command, r *alias.Resolver, _ alias.Store, _ []string) error {
		renderAliases(cmd.OutOrStdout(), r.Cache())
		return nil
	}),
}

var aliasesLookupCmd = &cobra.Command{
	Use:   "lookup <address | ~alias>...",
	Short: "Resolve addresses to aliases or aliases to addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE: withAliases(func(ctx context.Context, cmd *cobra.Command, r *alias.Resolver, _ alias.Store, args []string) error {
		out := cmd.OutOrStdout()
		for _, arg := range args {
			p, err := query.ParseParty(arg)
			if err != nil {
				return err
			}
			if p.IsAlias() {
				addr, err := r.ReverseResolve(ctx, p.Alias)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s: %s\n", p, addr)
				continue
			}
			fmt.Fprintf(out, "%s: %s\n", p.Address, r.Resolve(ctx, alias.NewParties(), p.Address, true))
		}
		return nil
	}),
}

var aliasesForgetCmd = &cobra.Command{
	Use:   "forget <address>...",
	Short: "Drop cached aliases so the next run asks the identity service again",
	Args:  cobra.MinimumNArgs(1),
	RunE: withAliases(func(ctx context.Context, cmd *cobra.Command, r *alias.Resolver, store alias.Store, args []string) error {
		for _, addr := range args {
			cached := r.Cache().Delete(addr)
			if err := store.Delete(ctx, addr); err != nil {
				return fmt.Errorf("forget %s: %w", addr, err)
			}
			if !cached {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s was not cached\n", addr)
			}
		}
		return nil
	}),
}

func init() {
	aliasesCmd.AddCommand(aliasesListCmd, aliasesLookupCmd, aliasesForgetCmd)
	rootCmd.AddCommand(aliasesCmd)
}

type aliasesFunc func(ctx context.Context, cmd *cobra.Command, r *alias.Resolver, store alias.Store, args []string) error

// withAliases opens the cache around fn and saves what fn resolved.
func withAliases(fn aliasesFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		r, store, err := openResolver(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("close alias cache", zap.Error(err))
			}
		}()

		if err := fn(ctx, cmd, r, store, args); err != nil {
			return err
		}
		return store.Save(ctx, r.Cache().Snapshot())
	}
}

func renderAliases(w io.Writer, cache *alias.Cache) {
	known := color.New(color.FgCyan).SprintFunc()
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Address", "Alias"})
	table.SetAutoWrapText(false)

	addresses := cache.Addresses()
	unknown := 0
	for _, addr := range addresses {
		e, _ := cache.Get(addr)
		name := "-"
		if e.Known {
			name = known(alias.Prefix + e.Name)
		} else {
			unknown++
		}
		table.Append([]string{addr, name})
	}
	table.SetFooter([]string{fmt.Sprintf("%d cached", len(addresses)), fmt.Sprintf("%d unknown", unknown)})
	table.Render()
}
