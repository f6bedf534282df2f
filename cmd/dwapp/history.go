// cmd/dwapp/history.go
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/dwapp/internal/config"
	"github.com/altuslabsxyz/dwapp/internal/history"
	"github.com/altuslabsxyz/dwapp/pkg/network"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past submissions",
	}

	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistoryShowCmd(a),
	)

	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var (
		limit      int
		failedOnly bool
		kind       string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List recorded submissions, newest first",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := history.ListOptions{Limit: limit, FailedOnly: failedOnly}
			switch k := network.SubmissionKind(kind); k {
			case "":
			case network.KindSimulate, network.KindBroadcast:
				opts.Kind = k
			default:
				return fmt.Errorf("invalid --kind %q (must be simulate or broadcast)", kind)
			}

			store, err := a.requireHistory()
			if err != nil {
				return err
			}
			records, err := store.List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if records == nil {
				records = []*history.Record{}
			}

			return a.render(records, func() {
				if len(records) == 0 {
					a.out.Info("No submissions recorded")
					return
				}
				w := tabwriter.NewWriter(a.out.Writer(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tTIME\tKIND\tSTATUS\tMESSAGES\tTX HASH")
				for _, r := range records {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						shortID(r.ID),
						r.Time.Local().Format(time.DateTime),
						r.Kind,
						recordStatus(r),
						shortTypes(r.MsgTypes),
						orDash(shortHash(r.TxHash)),
					)
				}
				w.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records (0 = all)")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only show unsuccessful submissions")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind: simulate or broadcast")

	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded submission",
		Long:  "Show one recorded submission. The id may be shortened to a unique prefix of at least 4 characters.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.requireHistory()
			if err != nil {
				return err
			}
			rec, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.render(rec, func() {
				a.out.Field("ID", rec.ID)
				a.out.Field("Time", rec.Time.Local().Format(time.RFC3339))
				a.out.Field("Sender", rec.Sender)
				if rec.ChainID != "" {
					a.out.Field("Chain ID", rec.ChainID)
				}
				a.out.Field("Messages", strings.Join(rec.MsgTypes, ", "))
				if rec.Memo != "" {
					a.out.Field("Memo", rec.Memo)
				}
				a.out.Println("")
				a.out.PrintSubmission(rec.Result)
			})
		},
	}
}

// requireHistory is getHistory for commands that cannot work without it.
func (a *app) requireHistory() (history.Store, error) {
	store, err := a.getHistory()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("history is disabled (set history.enabled = true in %s)", config.ConfigFileName)
	}
	return store, nil
}

func recordStatus(r *history.Record) string {
	if r.Result == nil {
		return "unknown"
	}
	if r.Result.Success {
		return "ok"
	}
	return string(r.Result.Failure)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12] + "…"
	}
	return h
}

// shortTypes drops the package path of each type url.
func shortTypes(types []string) string {
	names := make([]string, len(types))
	for i, t := range types {
		if idx := strings.LastIndex(t, "."); idx >= 0 {
			t = t[idx+1:]
		}
		names[i] = t
	}
	return strings.Join(names, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
