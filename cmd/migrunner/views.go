package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"migrunner/internal/deps"
	"migrunner/internal/history"
	"migrunner/internal/preflight"
)

type resultView struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Severity string `json:"severity"`
	Required bool   `json:"required"`
	Path     string `json:"path,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Hint     string `json:"hint,omitempty"`
}

type dependencyView struct {
	Name      string `json:"name"`
	Command   string `json:"command"`
	Path      string `json:"path,omitempty"`
	Available bool   `json:"available"`
	Optional  bool   `json:"optional"`
	Detail    string `json:"detail,omitempty"`
}

type sessionView struct {
	ID        string          `json:"id"`
	Customer  string          `json:"customer"`
	MigType   string          `json:"mig_type"`
	StartedAt time.Time       `json:"started_at"`
	Ready     bool            `json:"ready"`
	Recorded  bool            `json:"recorded"`
	Results   []resultView    `json:"results,omitempty"`
	Java      *dependencyView `json:"java,omitempty"`
}

func newResultViews(results []preflight.Result) []resultView {
	views := make([]resultView, 0, len(results))
	for _, res := range results {
		views = append(views, resultView{
			Name:     res.Name,
			Passed:   res.Passed,
			Severity: res.Severity.String(),
			Required: res.Required,
			Path:     res.Path,
			Detail:   res.Detail,
			Hint:     res.Hint,
		})
	}
	return views
}

func newDependencyView(status deps.Status) *dependencyView {
	return &dependencyView{
		Name:      status.Name,
		Command:   status.Command,
		Path:      status.Path,
		Available: status.Available,
		Optional:  status.Optional,
		Detail:    status.Detail,
	}
}

func newSessionView(session history.Session) sessionView {
	return sessionView{
		ID:        session.ID,
		Customer:  session.CustomerDir,
		MigType:   session.MigType,
		StartedAt: session.StartedAt,
		Ready:     session.Ready,
		Recorded:  true,
		Results:   newResultViews(session.Results),
	}
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
