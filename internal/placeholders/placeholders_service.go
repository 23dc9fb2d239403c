package placeholders

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/deployment"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
	"github.com/AnotherFullstackDev/cloudrunctl/internal/placeholders/git"
)

var (
	placeholderRegExp = regexp.MustCompile(`{{\s*([^{}]+)\s*}}`)
	modifierRegExp    = regexp.MustCompile(`^(\w+)(\(([^()]*)\))?$`)
)

type PlaceholderResolver func() (string, error)

type Resolvers map[string]PlaceholderResolver

type placeholderModifier struct {
	name string
	args []string
}

type placeholder struct {
	raw       string
	value     string
	modifiers []placeholderModifier
}

func (p placeholder) hasModifier(name string) bool {
	for _, m := range p.modifiers {
		if m.name == name {
			return true
		}
	}
	return false
}

type Service struct {
	gitRepoInfo git.RepositoryInfoService
}

func NewService(gitRepoInfo git.RepositoryInfoService) *Service {
	return &Service{
		gitRepoInfo: gitRepoInfo,
	}
}

func HasPlaceholders(value string) bool {
	return placeholderRegExp.MatchString(value)
}

// DeploymentResolvers exposes the resolved deployment fields as deployment.* placeholders.
func DeploymentResolvers(cfg deployment.Config) Resolvers {
	constant := func(v string) PlaceholderResolver {
		return func() (string, error) { return v, nil }
	}

	return Resolvers{
		"deployment.project": constant(cfg.Project),
		"deployment.region":  constant(cfg.Region),
		"deployment.service": constant(cfg.Service),
	}
}

func (s *Service) extractPlaceholders(value string) ([]placeholder, error) {
	matches := placeholderRegExp.FindAllStringSubmatch(value, -1)
	placeholders := make([]placeholder, 0, len(matches))

	for _, match := range matches {
		if len(match) < 2 {
			return nil, fmt.Errorf("invalid match structure")
		}

		raw := match[0]
		valueParts := strings.Split(match[1], "|")
		innerValue := strings.TrimSpace(valueParts[0])
		if innerValue == "" {
			return nil, fmt.Errorf("%w - empty placeholder: %s", lib.BadUserInputError, raw)
		}

		modifiers := make([]placeholderModifier, 0, len(valueParts)-1)
		for _, part := range valueParts[1:] {
			rawModifier := strings.TrimSpace(part)
			if rawModifier == "" {
				continue
			}

			modifierMatch := modifierRegExp.FindStringSubmatch(rawModifier)
			if modifierMatch == nil {
				return nil, fmt.Errorf("%w - invalid modifier format %q in placeholder: %s", lib.BadUserInputError, rawModifier, raw)
			}

			var modifierArgs []string
			if modifierArgsRaw := modifierMatch[3]; modifierArgsRaw != "" {
				modifierArgs = strings.Split(modifierArgsRaw, ",")
				for i := range modifierArgs {
					modifierArgs[i] = strings.TrimSpace(modifierArgs[i])
					if unquoted, err := strconv.Unquote(modifierArgs[i]); err == nil {
						modifierArgs[i] = unquoted
					}
				}
			}

			modifiers = append(modifiers, placeholderModifier{
				name: modifierMatch[1],
				args: modifierArgs,
			})
		}

		placeholders = append(placeholders, placeholder{
			raw:       raw,
			value:     innerValue,
			modifiers: modifiers,
		})
	}

	return placeholders, nil
}

// ResolvePlaceholders replaces every {{ name | modifier(args) }} occurrence in value.
// Extra resolvers are consulted after the built-in git.* and time.* ones, in order.
func (s *Service) ResolvePlaceholders(value string, extraResolvers ...Resolvers) (string, error) {
	placeholders, err := s.extractPlaceholders(value)
	if err != nil {
		return "", fmt.Errorf("extracting placeholders: %w", err)
	}
	if len(placeholders) == 0 {
		return value, nil
	}

	builtins := Resolvers{
		"git.branch":       s.resolveGitBranch,
		"git.commit":       s.resolveGitCommit,
		"git.short_commit": s.resolveGitShortCommit,
		"git.tag":          s.resolveGitTag,
		"time.timestamp":   resolveUnixTimestamp,
		"time.compact":     resolveCompactTimestamp,
		"time.iso8601":     resolveISO8601Timestamp,
	}

	for _, placeholder := range placeholders {
		resolver, ok := builtins[placeholder.value]
		for i := 0; !ok && i < len(extraResolvers); i++ {
			resolver, ok = extraResolvers[i][placeholder.value]
		}
		if !ok {
			return "", fmt.Errorf("%w - no resolver found for placeholder: %s", lib.BadUserInputError, placeholder.raw)
		}

		resolvedValue, err := resolver()
		if err != nil {
			if !errors.Is(err, lib.BadUserInputError) || !placeholder.hasModifier("default") {
				return "", fmt.Errorf("resolving placeholder %s: %w", placeholder.raw, err)
			}
			resolvedValue = ""
		}

		for _, modifier := range placeholder.modifiers {
			modifierFunc, ok := modifierResolvers[modifier.name]
			if !ok {
				return "", fmt.Errorf("%w - no resolver found for modifier: %s in placeholder: %s", lib.BadUserInputError, modifier.name, placeholder.raw)
			}

			resolvedValue, err = modifierFunc(resolvedValue, modifier.args)
			if err != nil {
				return "", fmt.Errorf("applying modifier %s to placeholder %s: %w", modifier.name, placeholder.raw, err)
			}
		}

		value = strings.Replace(value, placeholder.raw, resolvedValue, 1)
	}

	return value, nil
}

func (s *Service) resolveGitBranch() (string, error) {
	branch, err := s.gitRepoInfo.CurrentBranch()
	if err != nil {
		return "", fmt.Errorf("getting current git branch: %w", err)
	}
	return branch, nil
}

func (s *Service) resolveGitTag() (string, error) {
	tag, err := s.gitRepoInfo.CurrentTag()
	if err != nil {
		return "", fmt.Errorf("getting current git tag: %w", err)
	}

	if tag == nil {
		return "", fmt.Errorf("%w - no git tag found for current commit", lib.BadUserInputError)
	}

	return tag.Name().Short(), nil
}

func (s *Service) resolveGitCommit() (string, error) {
	commit, err := s.gitRepoInfo.CurrentCommit()
	if err != nil {
		return "", fmt.Errorf("getting current git commit: %w", err)
	}
	return commit.Hash.String(), nil
}

func (s *Service) resolveGitShortCommit() (string, error) {
	hash, err := s.resolveGitCommit()
	if err != nil {
		return "", err
	}
	return truncateModifier(hash, []string{"7"})
}
