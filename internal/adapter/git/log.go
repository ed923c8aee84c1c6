package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"taskorganizer/internal/core/domain"
	"taskorganizer/internal/core/ports"
)

const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
	logFormat = "--format=%x1e%H%x1f%an%x1f%aI%x1f%B%x1f"
)

// LogSource reads recent commits of a local repository with the git binary.
type LogSource struct {
	RepoPath string
}

var _ ports.CommitSource = (*LogSource)(nil)

func NewLogSource(repoPath string) *LogSource {
	return &LogSource{RepoPath: repoPath}
}

func (s *LogSource) RecentCommits(ctx context.Context, limit int) ([]domain.GitCommit, error) {
	if limit <= 0 {
		limit = 1
	}

	cmd := exec.CommandContext(ctx, "git", "log", "-n", strconv.Itoa(limit), "--name-only", logFormat)
	cmd.Dir = s.RepoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git log in %s: %w: %s", s.RepoPath, err, strings.TrimSpace(stderr.String()))
	}

	return parseLog(stdout.String())
}

func parseLog(out string) ([]domain.GitCommit, error) {
	commits := []domain.GitCommit{}
	for _, record := range strings.Split(out, recordSep) {
		if strings.TrimSpace(record) == "" {
			continue
		}

		fields := strings.SplitN(record, fieldSep, 5)
		if len(fields) != 5 {
			return nil, fmt.Errorf("git log: malformed record %q", record)
		}

		date, err := time.Parse(time.RFC3339, fields[2])
		if err != nil {
			return nil, fmt.Errorf("git log: commit %s: %w", fields[0], err)
		}

		files := []string{}
		for _, line := range strings.Split(fields[4], "\n") {
			if line = strings.TrimSpace(line); line != "" {
				files = append(files, line)
			}
		}

		commits = append(commits, domain.GitCommit{
			SHA:          fields[0],
			Author:       fields[1],
			Date:         date,
			Message:      strings.TrimSpace(fields[3]),
			FilesChanged: files,
		})
	}
	return commits, nil
}
