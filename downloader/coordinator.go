package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"music-bot-go/logcolors"
	"music-bot-go/services/engine"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrNoURL means the entry had no resolvable URL; no workspace was created.
	ErrNoURL = errors.New("no resolvable URL for entry")
	// ErrDownloadFailed covers every download/transcode failure.
	ErrDownloadFailed = errors.New("download failed")
	// ErrSendFailed means the audio was produced but could not be delivered.
	ErrSendFailed = errors.New("failed to send audio")
)

// DownloadFunc is the download/transcode operation consumed from the engine.
type DownloadFunc func(ctx context.Context, url, destDir string) (string, error)

// SendFunc delivers a finished audio file to the requesting chat. It runs
// before the workspace is removed, so the path is only valid for its
// duration.
type SendFunc func(path string, entry engine.TrackEntry) error

// Coordinator drives one play action through resolve → slot → download →
// send → cleanup. Concurrent downloads are bounded by a counting semaphore;
// the workspace directory is removed and the slot released on every exit
// path.
type Coordinator struct {
	tempDir  string
	timeout  time.Duration
	slots    *semaphore.Weighted
	download DownloadFunc
}

// New creates a Coordinator. maxConcurrent bounds simultaneous downloads;
// timeout bounds each download so a stuck transcode cannot hold its slot
// forever.
func New(tempDir string, maxConcurrent int, timeout time.Duration, download DownloadFunc) *Coordinator {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Coordinator{
		tempDir:  tempDir,
		timeout:  timeout,
		slots:    semaphore.NewWeighted(int64(maxConcurrent)),
		download: download,
	}
}

// WorkspacePath returns the scratch directory for one (key, index) play
// action. Deterministic naming keeps concurrent plays of different entries
// from colliding while letting a retry of the same entry reclaim its dir.
func (c *Coordinator) WorkspacePath(key string, index int) string {
	return filepath.Join(c.tempDir, fmt.Sprintf("%s_%d", key, index))
}

// Run executes one play action. Returns nil on success or one of ErrNoURL,
// ErrDownloadFailed, ErrSendFailed (or a context error from slot
// acquisition) so the caller can pick the right user-facing message.
func (c *Coordinator) Run(ctx context.Context, key string, index int, entry engine.TrackEntry, send SendFunc) error {
	url := entry.ResolveURL()
	if url == "" {
		return ErrNoURL
	}

	// Blocks this action, not the process, until a slot frees.
	if err := c.slots.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.slots.Release(1)

	workspace := c.WorkspacePath(key, index)
	if err := os.RemoveAll(workspace); err != nil {
		log.Warnf("%s Failed to remove stale workspace %s: %v", logcolors.LogCleanup, workspace, err)
	}
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return fmt.Errorf("%w: create workspace: %v", ErrDownloadFailed, err)
	}
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			log.Warnf("%s Failed to remove workspace %s: %v", logcolors.LogCleanup, workspace, err)
		}
	}()

	dctx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log.Infof("%s Downloading %s into %s", logcolors.LogDownload, url, workspace)
	path, err := c.download(dctx, url, workspace)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	if path == "" {
		return ErrDownloadFailed
	}

	if err := send(path, entry); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}
