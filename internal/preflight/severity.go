package preflight

// Severity tags how serious a failed check is for the migration.
type Severity int

const (
	// SeveritySilent failures are returned to the caller but never reported.
	SeveritySilent Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	// SeverityCritical failures stop the current customer migration.
	SeverityCritical
	// SeverityFatal failures stop every migration on this host.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeveritySilent:
		return "silent"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ParseSeverity is the inverse of Severity.String.
func ParseSeverity(name string) (Severity, bool) {
	for s := SeveritySilent; s <= SeverityFatal; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return SeveritySilent, false
}
