package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestExtensionMechanism(t *testing.T) {
	tempDir := t.TempDir()

	// An extension that prints back the configuration it received.
	helloSrc := fmt.Sprintf(`
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
	fmt.Printf("%s=%%s\n", os.Getenv("%s"))
}
`, EnvJournalFile, EnvJournalFile, EnvCurrency, EnvCurrency, EnvVerbose, EnvVerbose)

	helloPath := filepath.Join(tempDir, "fol-hello")
	srcFile := helloPath + ".go"
	if err := os.WriteFile(srcFile, []byte(helloSrc), 0644); err != nil {
		t.Fatalf("Failed to write fol-hello source: %v", err)
	}

	build := exec.Command("go", "build", "-o", helloPath, srcFile)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile fol-hello: %v", err)
	}

	folPath := filepath.Join(tempDir, "fol")
	build = exec.Command("go", "build", "-o", folPath, "../fol")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("Failed to compile fol binary: %v", err)
	}

	wantJournal := filepath.Join(tempDir, "some_journal.jsonl")
	wantCurrency := "XYZ"
	wantVerbose := true

	// Global flags must reach the extension as resolved environment variables.
	args := []string{
		"-journal-file", wantJournal,
		"-currency", wantCurrency,
		"-v",
		"hello",
	}

	folCmd := exec.Command(folPath, args...)
	folCmd.Env = []string{"PATH=" + tempDir + string(os.PathListSeparator) + os.Getenv("PATH")}

	var stdout, stderr bytes.Buffer
	folCmd.Stdout = &stdout
	folCmd.Stderr = &stderr

	if err := folCmd.Run(); err != nil {
		t.Fatalf("fol command failed: %v\nStdout: %s\nStderr: %s", err, stdout.String(), stderr.String())
	}

	output := stdout.String()
	for _, want := range []string{
		EnvJournalFile + "=" + wantJournal,
		EnvCurrency + "=" + wantCurrency,
		EnvVerbose + "=" + strconv.FormatBool(wantVerbose),
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, but got:\n%s", want, output)
		}
	}
}
