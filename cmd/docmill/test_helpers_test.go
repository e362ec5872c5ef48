package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCommand()
	var out, errBuf bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errBuf.String(), err
}

// writeTestConfig materializes a minimal valid config rooted in dir and
// returns its path.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	content := fmt.Sprintf(`[paths]
output_dir = %q
docs_dir = %q
registry_path = %q
state_file = %q
log_dir = %q

[logging]
format = "json"
level = "error"
`,
		filepath.Join(dir, "out"),
		filepath.Join(dir, "docs"),
		filepath.Join(dir, "registry.md"),
		filepath.Join(dir, "state.json"),
		filepath.Join(dir, "logs"),
	)
	path := filepath.Join(dir, "docmill.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
