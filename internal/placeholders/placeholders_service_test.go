package placeholders

import (
	"errors"
	"testing"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/require"
)

type mockGitRepoInfoService struct {
	Branch string
	Commit string
	Tag    string
}

var errEmpty = errors.New("value is empty")

func mustHash(hex string) plumbing.Hash {
	hash, ok := plumbing.FromHex(hex)
	if !ok {
		panic("invalid hash " + hex)
	}
	return hash
}

func (m mockGitRepoInfoService) CurrentBranch() (string, error) {
	if m.Branch == "" {
		return "", errEmpty
	}
	return m.Branch, nil
}

func (m mockGitRepoInfoService) CurrentCommit() (*object.Commit, error) {
	if m.Commit == "" {
		return nil, errEmpty
	}
	return &object.Commit{Hash: mustHash(m.Commit)}, nil
}

func (m mockGitRepoInfoService) CurrentTag() (*plumbing.Reference, error) {
	if m.Tag == "" {
		return nil, nil
	}
	return plumbing.NewHashReference(plumbing.NewTagReferenceName(m.Tag), mustHash(m.Commit)), nil
}

func (m mockGitRepoInfoService) TagsPointingAt(hash plumbing.Hash) ([]*plumbing.Reference, error) {
	tag, err := m.CurrentTag()
	if err != nil || tag == nil {
		return nil, err
	}
	return []*plumbing.Reference{tag}, nil
}

const commitHash = "56b189842130315a634ce6d510a4578f151eca32"

func TestPlaceholdersParsing(t *testing.T) {
	r := require.New(t)
	s := NewService(mockGitRepoInfoService{})

	t.Run("should parse simple placeholder", func(t *testing.T) {
		placeholders, err := s.extractPlaceholders("app:{{git.branch}}")
		r.NoError(err)
		r.Len(placeholders, 1)
		r.Equal("git.branch", placeholders[0].value)
		r.Equal("{{git.branch}}", placeholders[0].raw)
		r.Empty(placeholders[0].modifiers)
	})

	t.Run("should parse placeholders when markup is harsh", func(t *testing.T) {
		placeholders, err := s.extractPlaceholders("Start{{git.branch}}Middle{{ git.commit | upper }}End{{{git.tag}}}")
		r.NoError(err)
		r.Len(placeholders, 3)
		r.Equal("{{ git.commit | upper }}", placeholders[1].raw)
		r.Equal("git.commit", placeholders[1].value)
		r.Equal("{{git.tag}}", placeholders[2].raw)
	})

	t.Run("should parse modifiers with arguments", func(t *testing.T) {
		placeholders, err := s.extractPlaceholders(`{{ git.branch | replace_all("/", "-") | truncate(20) | lower }}`)
		r.NoError(err)
		r.Len(placeholders, 1)
		mods := placeholders[0].modifiers
		r.Len(mods, 3)
		r.Equal("replace_all", mods[0].name)
		r.Equal([]string{"/", "-"}, mods[0].args)
		r.Equal("truncate", mods[1].name)
		r.Equal([]string{"20"}, mods[1].args)
		r.Equal("lower", mods[2].name)
		r.Empty(mods[2].args)
	})

	t.Run("should reject malformed modifiers", func(t *testing.T) {
		_, err := s.extractPlaceholders("{{ git.branch | upper( }}")
		r.ErrorIs(err, lib.BadUserInputError)
	})
}

func TestPlaceholdersResolution(t *testing.T) {
	r := require.New(t)
	s := NewService(mockGitRepoInfoService{
		Branch: "feature/Login",
		Commit: commitHash,
		Tag:    "v1.0.0",
	})

	t.Run("should return values without placeholders unchanged", func(t *testing.T) {
		resolved, err := s.ResolvePlaceholders("img:latest")
		r.NoError(err)
		r.Equal("img:latest", resolved)
		r.False(HasPlaceholders("img:latest"))
	})

	t.Run("should resolve git placeholders", func(t *testing.T) {
		resolved, err := s.ResolvePlaceholders("app:{{ git.short_commit }} tag={{git.tag}} commit={{git.commit}}")
		r.NoError(err)
		r.Equal("app:56b1898 tag=v1.0.0 commit="+commitHash, resolved)
	})

	t.Run("should apply modifiers in order", func(t *testing.T) {
		resolved, err := s.ResolvePlaceholders(`app:{{ git.branch | replace_all("/", "-") | lower }}-{{ git.commit | truncate(4) | upper }}`)
		r.NoError(err)
		r.Equal("app:feature-login-56B1", resolved)
	})

	t.Run("should resolve repeated placeholders", func(t *testing.T) {
		resolved, err := s.ResolvePlaceholders("{{git.tag}}/{{git.tag | trim(v)}}")
		r.NoError(err)
		r.Equal("v1.0.0/1.0.0", resolved)
	})

	t.Run("should resolve deployment placeholders", func(t *testing.T) {
		cfg := deployment.Config{Project: "fia-prod", Region: "australia-southeast1", Service: "fia-mcp-server"}
		resolved, err := s.ResolvePlaceholders("{{ deployment.region }}-docker.pkg.dev/{{deployment.project}}/{{deployment.service}}/app:1", DeploymentResolvers(cfg))
		r.NoError(err)
		r.Equal("australia-southeast1-docker.pkg.dev/fia-prod/fia-mcp-server/app:1", resolved)
	})

	t.Run("should fail for unknown placeholders and modifiers", func(t *testing.T) {
		_, err := s.ResolvePlaceholders("{{ nope }}")
		r.ErrorIs(err, lib.BadUserInputError)

		_, err = s.ResolvePlaceholders("{{ git.branch | shout }}")
		r.ErrorIs(err, lib.BadUserInputError)
	})

	t.Run("should fail when no tag points at HEAD", func(t *testing.T) {
		untagged := NewService(mockGitRepoInfoService{Commit: commitHash})
		_, err := untagged.ResolvePlaceholders("{{ git.tag }}")
		r.ErrorIs(err, lib.BadUserInputError)
	})

	t.Run("should fall back with the default modifier", func(t *testing.T) {
		resolved, err := s.ResolvePlaceholders(`{{ empty | default("dev") }}`, Resolvers{
			"empty": func() (string, error) { return "", nil },
		})
		r.NoError(err)
		r.Equal("dev", resolved)
	})

	t.Run("should fall back with the default modifier when no tag points at HEAD", func(t *testing.T) {
		untagged := NewService(mockGitRepoInfoService{Commit: commitHash})
		resolved, err := untagged.ResolvePlaceholders(`app:{{ git.tag | default("dev") }}`)
		r.NoError(err)
		r.Equal("app:dev", resolved)
	})

	t.Run("should not hide git failures behind the default modifier", func(t *testing.T) {
		noCommit := NewService(mockGitRepoInfoService{})
		_, err := noCommit.ResolvePlaceholders(`{{ git.commit | default("dev") }}`)
		r.Error(err)
	})
}
