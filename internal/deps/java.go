package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// javaHomeVars are consulted in the order Kitchen's environment script uses.
var javaHomeVars = []string{"PENTAHO_JAVA_HOME", "_PENTAHO_JAVA_HOME", "JAVA_HOME"}

// JavaRequirement describes the Java runtime Kitchen will launch with.
//
// Kitchen prefers a JRE bundled inside the Pentaho installation, then the
// Java homes named by the environment, then "java" from PATH. Java is
// optional: migrunner never blocks a job on it.
func JavaRequirement(pentahoDir string) Requirement {
	return Requirement{
		Name:        "Java",
		Command:     executableName("java"),
		Candidates:  javaCandidates(pentahoDir),
		Description: "Required by Pentaho Kitchen",
		Optional:    true,
	}
}

// CheckJava resolves JavaRequirement.
func CheckJava(pentahoDir string) Status {
	return CheckBinaries([]Requirement{JavaRequirement(pentahoDir)})[0]
}

func javaCandidates(pentahoDir string) []string {
	var candidates []string
	if dir := strings.TrimSpace(pentahoDir); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "jre", "bin", executableName("java")))
	}
	for _, name := range javaHomeVars {
		if home := strings.TrimSpace(os.Getenv(name)); home != "" {
			candidates = append(candidates, filepath.Join(home, "bin", executableName("java")))
		}
	}
	return candidates
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
