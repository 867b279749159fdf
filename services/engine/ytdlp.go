package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// targetBitrate is the fixed MP3 transcode quality.
const targetBitrate = "192K"

// YtdlpExtractor drives the yt-dlp binary through go-ytdlp. It is the
// production Extractor implementation.
type YtdlpExtractor struct{}

// NewYtdlpExtractor returns an extractor backed by the yt-dlp binary.
func NewYtdlpExtractor() *YtdlpExtractor {
	return &YtdlpExtractor{}
}

// Search runs a flat (shallow) extraction for a prefixed search query like
// "ytsearch7:billie jean" and returns the raw entry records.
func (y *YtdlpExtractor) Search(ctx context.Context, queryString string) ([]map[string]interface{}, error) {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		IgnoreErrors().
		SkipDownload().
		FlatPlaylist().
		RestrictFilenames().
		DumpSingleJSON()

	res, err := cmd.Run(ctx, queryString)
	if err != nil {
		return nil, err
	}

	info, err := decodeInfo(res.Stdout)
	if err != nil {
		return nil, err
	}

	rawEntries, _ := info["entries"].([]interface{})
	entries := make([]map[string]interface{}, 0, len(rawEntries))
	for _, re := range rawEntries {
		if m, ok := re.(map[string]interface{}); ok && m != nil {
			entries = append(entries, m)
		}
	}
	return entries, nil
}

// FetchMetadata resolves full metadata for one URL or id without
// downloading. Playlists come back with their entries intact; the caller
// decides what to do with them.
func (y *YtdlpExtractor) FetchMetadata(ctx context.Context, urlOrID string) (map[string]interface{}, error) {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		IgnoreErrors().
		SkipDownload().
		DumpSingleJSON()

	res, err := cmd.Run(ctx, urlOrID)
	if err != nil {
		return nil, err
	}
	return decodeInfo(res.Stdout)
}

// Download fetches best-available audio and transcodes it to MP3 at the
// fixed target bitrate inside destDir. Returns the path of the written MP3.
func (y *YtdlpExtractor) Download(ctx context.Context, url, destDir string) (string, error) {
	cmd := ytdlp.New().
		Quiet().
		NoWarnings().
		NoPlaylist().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality(targetBitrate).
		Output(filepath.Join(destDir, "%(id)s.%(ext)s"))

	if _, err := cmd.Run(ctx, url); err != nil {
		return "", err
	}

	// The post-processor renames the file, so locate the MP3 instead of
	// predicting its name.
	files, err := os.ReadDir(destDir)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(strings.ToLower(f.Name()), ".mp3") {
			return filepath.Join(destDir, f.Name()), nil
		}
	}
	return "", fmt.Errorf("no mp3 produced in %s", destDir)
}

func decodeInfo(stdout string) (map[string]interface{}, error) {
	stdout = strings.TrimSpace(stdout)
	if stdout == "" {
		return nil, fmt.Errorf("empty extractor output")
	}
	var info map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		return nil, fmt.Errorf("failed to parse extractor output: %w", err)
	}
	return info, nil
}
