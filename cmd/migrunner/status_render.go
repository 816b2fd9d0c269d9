package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"migrunner/internal/deps"
	"migrunner/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 26
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

// renderHintLine aligns a hint under the message column of a status line.
func renderHintLine(hint string) string {
	return statusIndent + strings.Repeat(" ", statusLabelWidth+1) + "  " + hint
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

// resultKind maps a check result onto a status: failures that do not block
// are warnings.
func resultKind(res preflight.Result) statusKind {
	switch {
	case res.Passed:
		return statusOK
	case !res.Required:
		return statusWarn
	default:
		return statusError
	}
}

func resultLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, res := range results {
		message := res.Path
		if !res.Passed {
			message = fmt.Sprintf("%s: %s", res.Severity, res.Detail)
		}
		lines = append(lines, renderStatusLine(res.Name, resultKind(res), message, colorize))
		if !res.Passed && res.Hint != "" {
			lines = append(lines, renderHintLine(res.Hint))
		}
	}
	return lines
}

func dependencyLine(status deps.Status, colorize bool) string {
	if status.Available {
		return renderStatusLine(status.Name, statusOK, status.Path, colorize)
	}
	kind := statusError
	if status.Optional {
		kind = statusInfo
	}
	message := status.Detail
	if status.Description != "" {
		message = fmt.Sprintf("%s (%s)", message, status.Description)
	}
	return renderStatusLine(status.Name, kind, message, colorize)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func readinessLine(ready bool, blocking int, colorize bool) string {
	if ready {
		return renderStatusLine("Result", statusOK, "ready", colorize)
	}
	return renderStatusLine("Result", statusError, fmt.Sprintf("not ready (%d blocking)", blocking), colorize)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
