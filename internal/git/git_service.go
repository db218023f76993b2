package git

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/thomas-vilte/commitsage/internal/errors"
)

var (
	sshRegex   = regexp.MustCompile(`git@([^:]+):([^/]+)/(.+?)(?:\.git)?$`)
	httpsRegex = regexp.MustCompile(`https?://(?:[^@/]+@)?([^/]+)/([^/]+)/(.+?)(?:\.git)?/?$`)
)

// RepoInfo identifies a repository by the remote it was cloned from.
type RepoInfo struct {
	Owner    string
	Name     string
	Host     string
	Provider string
}

type GitService struct {
	dir string
}

// NewGitService runs git in dir, or in the working directory when dir is empty.
func NewGitService(dir string) *GitService {
	return &GitService{dir: dir}
}

// GetRepoInfo reads the origin remote of the local clone.
func (s *GitService) GetRepoInfo(ctx context.Context) (RepoInfo, error) {
	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", "origin")
	cmd.Dir = s.dir
	output, err := cmd.Output()
	if err != nil {
		return RepoInfo{}, errors.ErrGetRepoURL.WithError(err)
	}

	return parseRepoURL(strings.TrimSpace(string(output)))
}

func parseRepoURL(url string) (RepoInfo, error) {
	var matches []string
	if sshRegex.MatchString(url) {
		matches = sshRegex.FindStringSubmatch(url)
	} else if httpsRegex.MatchString(url) {
		matches = httpsRegex.FindStringSubmatch(url)
	}

	if len(matches) >= 4 {
		return RepoInfo{
			Owner:    matches[2],
			Name:     strings.TrimSuffix(matches[3], ".git"),
			Host:     matches[1],
			Provider: detectProvider(matches[1]),
		}, nil
	}

	return RepoInfo{}, errors.ErrExtractRepoInfo.WithContext("detail", fmt.Sprintf("[%s]", url))
}

func detectProvider(host string) string {
	if strings.Contains(host, "github") {
		return "github"
	}
	if strings.Contains(host, "gitlab") {
		return "gitlab"
	}
	return "unknown"
}
