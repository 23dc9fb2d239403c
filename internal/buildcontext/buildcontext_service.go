package buildcontext

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	ignore "github.com/sabhiram/go-gitignore"
)

const dockerIgnoreFile = ".dockerignore"

// Finding is a file inside the build context that matches a secret pattern.
type Finding struct {
	Path    string
	Pattern string
}

type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

// ExposedSecrets walks root and reports files matching one of patterns that .dockerignore
// does not exclude. .dockerignore is read with gitignore semantics, which agree with docker
// for the plain and ** patterns used to hide env files and keys.
func (i *Inspector) ExposedSecrets(root string, patterns []string) ([]Finding, error) {
	l := slog.With("context", "build_context_inspector")

	if len(patterns) == 0 {
		return nil, nil
	}

	root = filepath.Clean(root)

	dockerIgnore, err := ignore.CompileIgnoreFile(filepath.Join(root, dockerIgnoreFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("compile %s: %w", dockerIgnoreFile, err)
	}
	if dockerIgnore == nil {
		l.Debug("no .dockerignore in build context", "root", root)
	}

	findings := make([]Finding, 0)

	walkErr := filepath.WalkDir(root, func(absPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, absPath)
		if err != nil {
			return fmt.Errorf("get relative path: %w", err)
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if relPath == ".git" || strings.HasPrefix(relPath, ".git/") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if dockerIgnore != nil {
			if d.IsDir() {
				if dockerIgnore.MatchesPath(relPath) || dockerIgnore.MatchesPath(relPath+"/") {
					l.Debug("skipping ignored directory", "path", relPath)
					return fs.SkipDir
				}
				return nil
			}
			if dockerIgnore.MatchesPath(relPath) {
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		pattern, err := lib.FirstMatchingPattern(relPath, patterns)
		if err != nil {
			return fmt.Errorf("matching secret patterns: %w", err)
		}
		if pattern != "" {
			findings = append(findings, Finding{Path: relPath, Pattern: pattern})
		}

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk build context %s: %w", root, walkErr)
	}

	slices.SortFunc(findings, func(a, b Finding) int {
		return strings.Compare(a.Path, b.Path)
	})

	return findings, nil
}
