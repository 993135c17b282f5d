package driver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signature() *object.Signature {
	return &object.Signature{Name: "Build Bot", Email: "build@example.com", When: time.Now()}
}

func initGitRepo(t *testing.T, dir string) (*git.Repository, plumbing.Hash) {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	writeFile(t, filepath.Join(dir, "main.js"), "run();")
	_, err = worktree.Add("main.js")
	require.NoError(t, err)
	hash, err := worktree.Commit("init", &git.CommitOptions{Author: signature()})
	require.NoError(t, err)
	return repo, hash
}

func TestGitValues(t *testing.T) {
	dir := t.TempDir()
	repo, hash := initGitRepo(t, dir)

	values, err := GitValues(dir)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), values["GIT_COMMIT"])
	assert.Equal(t, hash.String()[:7], values["GIT_SHORT_COMMIT"])
	assert.Equal(t, "master", values["GIT_BRANCH"])
	assert.Equal(t, "", values["GIT_TAG"])

	_, err = repo.CreateTag("v1.0.0", hash, nil)
	require.NoError(t, err)
	_, err = repo.CreateTag("release", hash, &git.CreateTagOptions{Tagger: signature(), Message: "release"})
	require.NoError(t, err)

	values, err = GitValues(dir)
	require.NoError(t, err)
	assert.Equal(t, "release", values["GIT_TAG"])
}

func TestGitValuesFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	_, hash := initGitRepo(t, dir)
	sub := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	values, err := GitValues(sub)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), values["GIT_COMMIT"])
}

func TestGitValuesDetachedHead(t *testing.T) {
	dir := t.TempDir()
	repo, hash := initGitRepo(t, dir)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, worktree.Checkout(&git.CheckoutOptions{Hash: hash}))

	values, err := GitValues(dir)
	require.NoError(t, err)
	assert.Equal(t, "", values["GIT_BRANCH"])
}

func TestGitValuesOutsideRepository(t *testing.T) {
	_, err := GitValues(t.TempDir())
	assert.Error(t, err)
}

func TestEvaluatorConfigInjectsGitValues(t *testing.T) {
	dir := t.TempDir()
	_, hash := initGitRepo(t, dir)
	project := NewProject(dir)
	project.Git = true

	cfg, err := project.EvaluatorConfig(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, hash.String(), cfg.Values["GIT_COMMIT"])
	assert.Equal(t, "master", cfg.Values["GIT_BRANCH"])
}
