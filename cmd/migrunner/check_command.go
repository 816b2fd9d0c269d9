package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"migrunner/internal/config"
	"migrunner/internal/deps"
	"migrunner/internal/history"
	"migrunner/internal/logging"
	"migrunner/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var customer string
	var migType string
	var jsonOutput bool
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run preflight checks for a customer migration",
		Long: `Run every preflight check for one customer and migration type.

Failed checks are logged at their severity on stderr. The command exits
non-zero when any required check fails, so scripts can gate the Kitchen
run on it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			job, err := resolveJob(cfg, customer, migType)
			if err != nil {
				return err
			}
			logger, closeLog, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			session := history.Session{
				ID:          uuid.NewString(),
				CustomerDir: job.CustomerDir,
				MigType:     job.MigType,
				StartedAt:   time.Now(),
			}
			runCtx := logging.WithSessionID(cmd.Context(), session.ID)
			logger = logging.WithContext(runCtx, logger).With(logging.Args(
				logging.String(logging.FieldCustomer, job.CustomerDir),
				logging.String(logging.FieldMigType, job.MigType),
			)...)

			checker := preflight.New(preflight.SettingsFromConfig(cfg), preflight.NewSlogReporter(runCtx, logger))
			session.Results = checker.RunAll(job)
			session.Ready = preflight.Ready(session.Results)
			java := deps.CheckJava(cfg.Pentaho.Dir)

			recorded := false
			if cfg.History.Enabled && !noHistory {
				recorded = recordSession(runCtx, ctx, session, logger)
			}

			blocking := preflight.Blocking(session.Results)
			if jsonOutput {
				view := newSessionView(session)
				view.Recorded = recorded
				view.Java = newDependencyView(java)
				if err := writeJSON(cmd, view); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				writeCheckReport(out, session, java, len(blocking), colorize)
			}

			if len(blocking) > 0 {
				names := make([]string, 0, len(blocking))
				for _, res := range blocking {
					names = append(names, res.Name)
				}
				return fmt.Errorf("customer %s is not ready for %s: %s", job.CustomerDir, job.MigType, strings.Join(names, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&customer, "customer", "", "Customer folder name under the migration root")
	cmd.Flags().StringVarP(&migType, "type", "t", "", "Migration type (for example PDOL, SDOL, MLM)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this session in the history database")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// resolveJob validates the flags and canonicalizes the migration type.
func resolveJob(cfg *config.Config, customer, migType string) (preflight.Job, error) {
	customer = strings.TrimSpace(customer)
	switch {
	case customer == "":
		return preflight.Job{}, fmt.Errorf("customer is required")
	case customer == "." || customer == "..":
		return preflight.Job{}, fmt.Errorf("customer %q is not a folder name", customer)
	case strings.ContainsAny(customer, `/\`) || customer != filepath.Base(customer):
		return preflight.Job{}, fmt.Errorf("customer %q must be a folder name, not a path", customer)
	}

	canonical := config.CanonicalType(migType)
	if canonical == "" {
		return preflight.Job{}, fmt.Errorf("migration type is required")
	}
	if !cfg.HasMigrationType(canonical) {
		return preflight.Job{}, fmt.Errorf("unknown migration type %q (configured: %s)", migType, strings.Join(cfg.Migration.Types, ", "))
	}
	return preflight.Job{CustomerDir: customer, MigType: canonical}, nil
}

// recordSession stores the session; a failure is logged and does not change
// the outcome of the check.
func recordSession(runCtx context.Context, ctx *commandContext, session history.Session, logger *slog.Logger) bool {
	err := ctx.withHistory(func(store *history.Store) error {
		_, err := store.Record(runCtx, session)
		return err
	})
	if err != nil {
		logger.Warn("check session not recorded", logging.Args(logging.Error(err))...)
		return false
	}
	return true
}

func writeCheckReport(out io.Writer, session history.Session, java deps.Status, blocking int, colorize bool) {
	lines := renderSectionHeader(fmt.Sprintf("Preflight: %s (%s)", session.CustomerDir, session.MigType), colorize)
	lines = append(lines, resultLines(session.Results, colorize)...)
	lines = append(lines, dependencyLine(java, colorize))
	lines = append(lines, "")
	lines = append(lines, renderStatusLine("Session", statusInfo, session.ID, colorize))
	lines = append(lines, readinessLine(session.Ready, blocking, colorize))
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
