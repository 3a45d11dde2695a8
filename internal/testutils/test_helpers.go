package testutils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

type TestEnvironment struct {
	TempDir    string
	LogFile    string
	ConfigFile string
	Cleanup    func()
}

// SetupTestEnvironment creates a temp directory holding an empty action log
// location and an itk.yaml that points at it with the admin check disabled.
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "ITToolKit_Combined_Log.txt")

	configFile := filepath.Join(tmpDir, "itk.yaml")
	config := "log_file: " + filepath.ToSlash(logFile) + "\n" +
		"require_admin: false\n" +
		"diag_log_file: " + filepath.ToSlash(filepath.Join(tmpDir, "itk.log")) + "\n"
	if err := os.WriteFile(configFile, []byte(config), 0600); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	return &TestEnvironment{
		TempDir:    tmpDir,
		LogFile:    logFile,
		ConfigFile: configFile,
		Cleanup:    func() {},
	}
}

var timestampPrefix = regexp.MustCompile(`(?m)^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] `)

// ReadLogMessages returns the action log with timestamps stripped, one entry
// per element. Continuation lines of multi-line entries stay attached.
func ReadLogMessages(t *testing.T, path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("Failed to read action log: %v", err)
	}

	var entries []string
	locs := timestampPrefix.FindAllStringIndex(string(data), -1)
	for i, loc := range locs {
		end := len(data)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		entries = append(entries, strings.TrimRight(string(data[loc[1]:end]), "\n"))
	}
	return entries
}
