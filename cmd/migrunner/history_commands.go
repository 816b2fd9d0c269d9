package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"migrunner/internal/history"
	"migrunner/internal/preflight"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded preflight sessions",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var customer string
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("limit must not be negative")
			}
			return ctx.withHistory(func(store *history.Store) error {
				sessions, err := store.List(cmd.Context(), history.Filter{Customer: customer, Limit: limit})
				if err != nil {
					return err
				}
				if jsonOutput {
					views := make([]sessionView, 0, len(sessions))
					for _, session := range sessions {
						views = append(views, newSessionView(session))
					}
					return writeJSON(cmd, views)
				}

				out := cmd.OutOrStdout()
				if len(sessions) == 0 {
					fmt.Fprintln(out, "No sessions recorded")
					return nil
				}
				rows := make([][]string, 0, len(sessions))
				for _, session := range sessions {
					rows = append(rows, []string{
						shortID(session.ID),
						session.StartedAt.In(time.Local).Format(historyTimeLayout),
						session.CustomerDir,
						session.MigType,
						yesNo(session.Ready),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Started", "Customer", "Type", "Ready"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignCenter},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Only show sessions for this customer")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output sessions as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the results of a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				session, err := store.Get(cmd.Context(), args[0])
				if errors.Is(err, history.ErrNotFound) {
					return fmt.Errorf("session %s not found", args[0])
				}
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, newSessionView(session))
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				lines := renderSectionHeader(fmt.Sprintf("Session %s", session.ID), colorize)
				lines = append(lines,
					renderStatusLine("Customer", statusInfo, session.CustomerDir, colorize),
					renderStatusLine("Type", statusInfo, session.MigType, colorize),
					renderStatusLine("Started", statusInfo, session.StartedAt.In(time.Local).Format(historyTimeLayout), colorize),
					"",
				)
				lines = append(lines, resultLines(session.Results, colorize)...)
				lines = append(lines, "", readinessLine(session.Ready, len(preflight.Blocking(session.Results)), colorize))
				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the session as JSON")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
