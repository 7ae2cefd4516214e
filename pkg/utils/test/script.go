package testutils

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteScript writes an executable /bin/sh script named name into dir and
// returns its path. It stands in for the external model tool in tests.
func WriteScript(dir, name, body string) (string, error) {
	path := filepath.Join(dir, name)
	// #nosec G306 -- the script must be executable.
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		return "", fmt.Errorf("writing script: %w", err)
	}
	return path, nil
}

// EchoLLMScript replies with "<model>: <stdin>" where model is the value
// following -m, so tests can see which participant answered which prompt.
const EchoLLMScript = `model=""
while [ $# -gt 0 ]; do
  case "$1" in
    -m) model="$2"; shift 2 ;;
    *) shift ;;
  esac
done
printf '%s: ' "$model"
cat
printf '\n'`
