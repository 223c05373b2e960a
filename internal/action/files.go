package action

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables naming the runner's command files.
const (
	EnvGitHubPath   = "GITHUB_PATH"
	EnvGitHubOutput = "GITHUB_OUTPUT"
)

// AddPath makes dir available on PATH for every later step of the job
// and for this process.
func (c *Core) AddPath(dir string) error {
	if dir == "" {
		return fmt.Errorf("add path: directory is empty")
	}

	c.gha.AddPath(dir)

	current := c.getenv("PATH")
	if pathContains(current, dir) {
		return nil
	}
	updated := dir
	if current != "" {
		updated = dir + string(os.PathListSeparator) + current
	}
	if err := c.setenv("PATH", updated); err != nil {
		return fmt.Errorf("update PATH: %w", err)
	}
	return nil
}

// SetOutput publishes a step output through GITHUB_OUTPUT.
func (c *Core) SetOutput(name, value string) {
	c.gha.SetOutput(name, value)
}

func pathContains(pathList, dir string) bool {
	clean := filepath.Clean(dir)
	for _, entry := range filepath.SplitList(pathList) {
		if entry != "" && filepath.Clean(entry) == clean {
			return true
		}
	}
	return false
}
