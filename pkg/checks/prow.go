package checks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/prtrack/prtrack/pkg/github"
)

// ProwResultsBucket is the GCS bucket prow uploads job results to.
const ProwResultsBucket = "gs://test-platform-results"

// ProwJob identifies one prow run derived from a commit status.
type ProwJob struct {
	// RunID is the last path segment of the status target URL.
	RunID string

	// JobName is the second-to-last path segment of the status target URL.
	JobName string

	// TestName is the last /-separated segment of the status context.
	TestName string
}

// ParseProwJob derives prow job coordinates from a commit status. It fails
// when the target URL does not carry the job name and run ID in its last
// two path segments, so a download never starts against a half-built path.
func ParseProwJob(status github.CommitStatus) (*ProwJob, error) {
	trimmed := strings.Trim(status.TargetURL, "/")
	if trimmed == "" {
		return nil, fmt.Errorf("cannot derive prow job: status %q has no target URL", status.Context)
	}

	segs := strings.Split(trimmed, "/")
	if len(segs) < 2 {
		return nil, fmt.Errorf("cannot derive prow job from target URL %q", status.TargetURL)
	}
	runID := segs[len(segs)-1]
	jobName := segs[len(segs)-2]
	if runID == "" || jobName == "" {
		return nil, fmt.Errorf("cannot derive prow job from target URL %q", status.TargetURL)
	}

	ctxSegs := strings.Split(status.Context, "/")
	testName := ctxSegs[len(ctxSegs)-1]
	if testName == "" {
		return nil, fmt.Errorf("cannot derive test name from context %q", status.Context)
	}

	return &ProwJob{
		RunID:    runID,
		JobName:  jobName,
		TestName: testName,
	}, nil
}

// DownloadOptions specifies where a prow artifact download comes from and
// where it goes.
type DownloadOptions struct {
	// Owner and Repo name the repository the pull request belongs to.
	Owner string
	Repo  string

	// PRNumber is the pull request number.
	PRNumber int

	// ArtifactPath optionally narrows the download to a path below the
	// test's artifacts directory.
	ArtifactPath string

	// DestDir is where the run's directory is created (default ".").
	DestDir string

	// Out receives progress output (default os.Stdout).
	Out io.Writer
}

// ArtifactsURL returns the GCS URL of the job's artifacts for the given
// pull request.
func (j *ProwJob) ArtifactsURL(owner, repo string, prNumber int, artifactPath string) string {
	url := fmt.Sprintf("%s/pr-logs/pull/%s_%s/%d/%s/%s/artifacts/%s",
		ProwResultsBucket, owner, repo, prNumber, j.JobName, j.RunID, j.TestName)
	if artifactPath != "" {
		url += "/" + strings.TrimPrefix(artifactPath, "/")
	}
	return url
}

// Download copies the job's artifacts into a directory named after the run
// ID, using gsutil. gsutil's own output streams to opts.Out as it runs.
func (j *ProwJob) Download(ctx context.Context, opts DownloadOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	destDir := opts.DestDir
	if destDir == "" {
		destDir = "."
	}

	dest := filepath.Join(destDir, j.RunID)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	src := j.ArtifactsURL(opts.Owner, opts.Repo, opts.PRNumber, opts.ArtifactPath)
	args := []string{"-m", "cp", "-r", src, dest + "/"}

	fmt.Fprintf(out, "Downloading: gsutil %s\n", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, "gsutil", args...)
	cmd.Stdout = out
	cmd.Stderr = out
	err := cmd.Run()

	fmt.Fprintf(out, "Download finished with exit code %d\n", cmd.ProcessState.ExitCode())

	if err != nil {
		return fmt.Errorf("gsutil cp failed: %w", err)
	}
	return nil
}
