package driver

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitValueNames are the values GitValues binds.
var GitValueNames = []string{"GIT_BRANCH", "GIT_COMMIT", "GIT_SHORT_COMMIT", "GIT_TAG"}

// GitValues describes the HEAD of the repository enclosing dir. GIT_BRANCH
// is empty on a detached HEAD and GIT_TAG is empty when no tag points at
// HEAD.
func GitValues(dir string) (map[string]any, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("git: open %s: %w", dir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("git: resolve HEAD: %w", err)
	}
	commit := head.Hash().String()

	branch := ""
	if head.Name().IsBranch() {
		branch = head.Name().Short()
	}
	tag, err := headTag(repo, head.Hash())
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"GIT_BRANCH":       branch,
		"GIT_COMMIT":       commit,
		"GIT_SHORT_COMMIT": commit[:7],
		"GIT_TAG":          tag,
	}, nil
}

// headTag returns the first tag, in name order, that points at hash.
// Annotated tags are peeled to their commit.
func headTag(repo *git.Repository, hash plumbing.Hash) (string, error) {
	refs, err := repo.Tags()
	if err != nil {
		return "", fmt.Errorf("git: list tags: %w", err)
	}
	defer refs.Close()

	found := ""
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if obj, err := repo.TagObject(target); err == nil {
			commit, err := obj.Commit()
			if err != nil {
				return nil
			}
			target = commit.Hash
		}
		if target != hash {
			return nil
		}
		name := ref.Name().Short()
		if found == "" || name < found {
			found = name
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("git: list tags: %w", err)
	}
	return found, nil
}
