package mythril

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Compile runs the contract build step with root as working directory. Only
// the exit code matters; stderr is folded into the returned error for the
// failure message.
func Compile(root string, command []string) error {
	if len(command) == 0 {
		return errors.New("empty build command")
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = root
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("compilation failed: %s", strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("compilation failed: %w", err)
	}
	return nil
}
