package git

import (
	"fmt"
	"sync"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

type RepositoryInfoService interface {
	CurrentBranch() (string, error)
	CurrentCommit() (*object.Commit, error)
	CurrentTag() (*plumbing.Reference, error)
	TagsPointingAt(hash plumbing.Hash) ([]*plumbing.Reference, error)
}

// repositoryInfoServiceImpl opens the repository on first use. Most invocations carry no git
// placeholders and must keep working outside of a checkout.
type repositoryInfoServiceImpl struct {
	path    string
	once    sync.Once
	r       *git.Repository
	openErr error
}

func NewRepositoryInfoService(repoPath string) RepositoryInfoService {
	return &repositoryInfoServiceImpl{path: repoPath}
}

func (s *repositoryInfoServiceImpl) repo() (*git.Repository, error) {
	s.once.Do(func() {
		s.r, s.openErr = git.PlainOpen(s.path)
	})
	if s.openErr != nil {
		return nil, fmt.Errorf("opening repository %s: %w", s.path, s.openErr)
	}
	return s.r, nil
}

func (s *repositoryInfoServiceImpl) CurrentBranch() (string, error) {
	repo, err := s.repo()
	if err != nil {
		return "", err
	}

	headRef, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	name := headRef.Name()
	if !name.IsBranch() {
		return "", fmt.Errorf("HEAD is not pointing to a branch")
	}

	return name.Short(), nil
}

func (s *repositoryInfoServiceImpl) CurrentCommit() (*object.Commit, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	commit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting commit object: %w", err)
	}

	return commit, nil
}

// TagsPointingAt returns lightweight and annotated tag references resolving to hash.
func (s *repositoryInfoServiceImpl) TagsPointingAt(hash plumbing.Hash) ([]*plumbing.Reference, error) {
	repo, err := s.repo()
	if err != nil {
		return nil, err
	}

	tagsIter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("getting tags iterator: %w", err)
	}
	defer tagsIter.Close()

	tags := make([]*plumbing.Reference, 0, 4)
	err = tagsIter.ForEach(func(reference *plumbing.Reference) error {
		if reference.Hash().Equal(hash) {
			tags = append(tags, reference)
			return nil
		}

		obj, err := repo.TagObject(reference.Hash())
		if err != nil {
			// lightweight tag pointing elsewhere
			return nil
		}
		if obj.Target.Equal(hash) {
			tags = append(tags, reference)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating over tags: %w", err)
	}

	return tags, nil
}

func (s *repositoryInfoServiceImpl) CurrentTag() (*plumbing.Reference, error) {
	commit, err := s.CurrentCommit()
	if err != nil {
		return nil, fmt.Errorf("getting current commit: %w", err)
	}

	tags, err := s.TagsPointingAt(commit.Hash)
	if err != nil {
		return nil, fmt.Errorf("getting tags pointing at current commit: %w", err)
	}
	if len(tags) == 0 {
		return nil, nil
	}

	return tags[0], nil
}
