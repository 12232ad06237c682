// Package ignore decides which paths of a directory walk are excluded by
// .gitignore files and the user's global git excludes file.
package ignore

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

var (
	osReadFile    = os.ReadFile
	osUserHomeDir = os.UserHomeDir

	readRepoPatterns = func(root string) ([]gitignore.Pattern, error) {
		return gitignore.ReadPatterns(osfs.New(root), nil)
	}
	gitConfigExcludesFile = func(root string) (string, error) {
		output, err := exec.Command("git", "-C", root, "config", "--get", "core.excludesFile").Output()
		return string(output), err
	}
)

// Matcher matches absolute paths below root.
type Matcher struct {
	root    string
	matcher gitignore.Matcher
}

// Load collects the .gitignore patterns found under root plus the global
// excludes file. The .git directory itself is always ignored.
func Load(root string) (*Matcher, error) {
	patterns := []gitignore.Pattern{gitignore.ParsePattern(".git/", nil)}
	patterns = append(patterns, loadGlobalIgnorePatterns(root)...)
	repoPatterns, err := readRepoPatterns(root)
	if err != nil {
		return nil, err
	}
	patterns = append(patterns, repoPatterns...)
	return &Matcher{
		root:    filepath.Clean(root),
		matcher: gitignore.NewMatcher(patterns),
	}, nil
}

// Ignored reports whether path should be left out of the walk.
// Paths outside root are never ignored.
func (m *Matcher) Ignored(path string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(m.root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	return m.matcher.Match(segments, isDir)
}

func loadGlobalIgnorePatterns(root string) []gitignore.Pattern {
	patterns := make([]gitignore.Pattern, 0)
	excludesPath, ok := getGlobalExcludesFile(root)
	if ok {
		filePatterns, err := loadIgnorePatternsFromFile(excludesPath)
		if err == nil {
			patterns = append(patterns, filePatterns...)
		}
		return patterns
	}
	defaultPattern := gitignore.ParsePattern(".DS_Store", nil)
	patterns = append(patterns, defaultPattern)
	return patterns
}

func loadIgnorePatternsFromFile(path string) ([]gitignore.Pattern, error) {
	content, err := osReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseIgnorePatterns(content), nil
}

func parseIgnorePatterns(content []byte) []gitignore.Pattern {
	patterns := make([]gitignore.Pattern, 0)
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns
}

func getGlobalExcludesFile(root string) (string, bool) {
	output, err := gitConfigExcludesFile(root)
	if err != nil {
		return "", false
	}
	raw := strings.TrimSpace(output)
	if raw == "" {
		return "", false
	}
	if raw == "~" || strings.HasPrefix(raw, "~/") {
		home, homeErr := osUserHomeDir()
		if homeErr == nil {
			if raw == "~" {
				raw = home
			} else {
				raw = filepath.Join(home, strings.TrimPrefix(raw, "~/"))
			}
		}
	}
	return raw, true
}
