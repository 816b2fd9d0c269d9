package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"migrunner/internal/config"
	"migrunner/internal/preflight"
)

type customerRow struct {
	Name       string   `json:"name"`
	Reserved   bool     `json:"reserved"`
	Parameters bool     `json:"parameters"`
	Properties bool     `json:"properties"`
	Types      []string `json:"types"`
}

func newCustomersCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List customer folders under the migration root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rows, err := scanCustomers(cfg)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, rows)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No customer folders found in %s\n", cfg.Migration.Root)
				return nil
			}
			table := make([][]string, 0, len(rows))
			for _, row := range rows {
				types := strings.Join(row.Types, ", ")
				if types == "" {
					types = "-"
				}
				table = append(table, []string{row.Name, yesNo(row.Reserved), yesNo(row.Parameters), yesNo(row.Properties), types})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Customer", "Reserved", "Parameters", "Properties", "Types"},
				table,
				[]columnAlignment{alignLeft, alignCenter, alignCenter, alignCenter, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output customers as JSON")
	return cmd
}

// scanCustomers inspects every folder directly under the migration root. Hidden
// entries and plain files are skipped. The checks run with a discarding
// reporter: a listing is not a preflight run.
func scanCustomers(cfg *config.Config) ([]customerRow, error) {
	entries, err := os.ReadDir(cfg.Migration.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("migration root %s does not exist", cfg.Migration.Root)
		}
		return nil, fmt.Errorf("read migration root: %w", err)
	}

	checker := preflight.New(preflight.SettingsFromConfig(cfg), preflight.Discard)
	rows := make([]customerRow, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		job := preflight.Job{CustomerDir: name}
		row := customerRow{
			Name:       name,
			Reserved:   !checker.NotReserved(job),
			Parameters: checker.ParametersPresent(job),
			Properties: checker.PropertiesPresent(job),
			Types:      []string{},
		}
		for _, migType := range cfg.Migration.Types {
			job.MigType = migType
			if checker.MigTypeDirPresent(job) {
				row.Types = append(row.Types, migType)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
