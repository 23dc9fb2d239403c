package buildcontext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var secretPatterns = []string{".env", ".env.*", "**/.env", "**/.env.*", "**/*.pem"}

func TestExposedSecrets(t *testing.T) {
	r := require.New(t)

	t.Run("should report secrets without a .dockerignore", func(t *testing.T) {
		root := t.TempDir()

		DirectorySpec{
			".": {
				{Name: ".env", Content: "AXCELERATE_WSTOKEN=x"},
				{Name: ".env.yaml", Content: "AXCELERATE_WSTOKEN: x"},
				{Name: "Dockerfile", Content: "FROM python:3.12-slim"},
			},
			"certs": {
				{Name: "server.pem", Content: "-----BEGIN"},
			},
			"src": {
				{Name: "main.py", Content: "print()"},
			},
		}.Build(t, root)

		findings, err := NewInspector().ExposedSecrets(root, secretPatterns)
		r.NoError(err)
		r.Equal([]Finding{
			{Path: ".env", Pattern: ".env"},
			{Path: ".env.yaml", Pattern: ".env.*"},
			{Path: "certs/server.pem", Pattern: "**/*.pem"},
		}, findings)
	})

	t.Run("should respect .dockerignore for files and directories", func(t *testing.T) {
		root := t.TempDir()

		DirectorySpec{
			".": {
				{Name: ".dockerignore", Content: "/.env*\ncerts/\n"},
				{Name: ".env", Content: "A=b"},
				{Name: ".env.yaml", Content: "A: b"},
			},
			"certs": {
				{Name: "server.pem", Content: "-----BEGIN"},
			},
			"config": {
				{Name: ".env.local", Content: "A=b"},
			},
		}.Build(t, root)

		findings, err := NewInspector().ExposedSecrets(root, secretPatterns)
		r.NoError(err)
		r.Equal([]Finding{
			{Path: "config/.env.local", Pattern: "**/.env.*"},
		}, findings)
	})

	t.Run("should skip the .git directory", func(t *testing.T) {
		root := t.TempDir()

		DirectorySpec{
			".git": {
				{Name: ".env", Content: "A=b"},
			},
		}.Build(t, root)

		findings, err := NewInspector().ExposedSecrets(root, secretPatterns)
		r.NoError(err)
		r.Empty(findings)
	})

	t.Run("should keep walking past a .git file", func(t *testing.T) {
		root := t.TempDir()

		DirectorySpec{
			".": {
				{Name: ".git", Content: "gitdir: ../.git/worktrees/app"},
				{Name: "server.pem", Content: "-----BEGIN"},
			},
		}.Build(t, root)

		findings, err := NewInspector().ExposedSecrets(root, secretPatterns)
		r.NoError(err)
		r.Equal([]Finding{{Path: "server.pem", Pattern: "**/*.pem"}}, findings)
	})

	t.Run("should do nothing without patterns", func(t *testing.T) {
		findings, err := NewInspector().ExposedSecrets(t.TempDir(), nil)
		r.NoError(err)
		r.Empty(findings)
	})
}

// --- helpers ---

func writeFile(t *testing.T, root string, rel string, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}

type FileSpec struct {
	Name    string
	Content string
}

type DirectorySpec map[string][]*FileSpec

func (d DirectorySpec) Build(t *testing.T, root string) {
	t.Helper()
	for directoryPath, files := range d {
		require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(directoryPath)), 0o755))
		for _, file := range files {
			if file != nil {
				writeFile(t, root, directoryPath+"/"+file.Name, file.Content)
			}
		}
	}
}
