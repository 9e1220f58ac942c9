package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"relay_bot/internal/logger"
)

const (
	defaultBinary = "yt-dlp"
	defaultDir    = "downloads"
	defaultSizeMB = 50

	// Browser-like headers so platform servers do not reject the request
	// as a non-browser client.
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
)

// Config controls how YtDlp invokes the yt-dlp binary.
type Config struct {
	Dir        string // download directory, created on demand
	MaxSizeMB  int    // format filter upper bound, matches the delivery channel's attachment cap
	BinaryPath string // explicit binary path; empty means yt-dlp on PATH
}

// YtDlp fetches media by shelling out to the yt-dlp binary. Files are
// written as <dir>/<media id>.<ext>, so concurrent fetches of distinct
// media never collide.
type YtDlp struct {
	binary string
	dir    string
	format string
}

// NewYtDlp creates a yt-dlp backed fetcher.
func NewYtDlp(cfg Config) *YtDlp {
	binary := cfg.BinaryPath
	if binary == "" {
		binary = defaultBinary
	}
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	size := cfg.MaxSizeMB
	if size < 1 {
		size = defaultSizeMB
	}
	return &YtDlp{
		binary: binary,
		dir:    dir,
		format: fmt.Sprintf("best[filesize<%dM]", size),
	}
}

// Fetch downloads the media behind url and returns the local file.
// No timeout is imposed here; long-running extractions are bounded only by
// ctx and yt-dlp's own behavior.
func (y *YtDlp) Fetch(ctx context.Context, url string) (*Result, error) {
	if err := os.MkdirAll(y.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download dir %s: %w", y.dir, err)
	}

	// --print after_move:filepath makes yt-dlp emit the final file path on
	// stdout; --no-simulate keeps the download itself enabled.
	args := []string{
		"--no-warnings",
		"--quiet",
		"--no-simulate",
		"--print", "after_move:filepath",
		"--output", filepath.Join(y.dir, "%(id)s.%(ext)s"),
		"--format", y.format,
		"--user-agent", userAgent,
		"--add-header", "Accept:" + acceptHeader,
		url,
	}

	logger.L().Debugf("Invoking %s for %s", y.binary, url)

	cmd := exec.CommandContext(ctx, y.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	path, err := parseFilepath(stdout.String())
	if err != nil {
		return nil, err
	}

	return &Result{Path: path, Ext: extOf(path)}, nil
}

// parseFilepath extracts the downloaded file path from yt-dlp stdout.
// The path is the last non-empty line.
func parseFilepath(out string) (string, error) {
	lines := strings.Split(out, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("yt-dlp reported no output file")
}

func extOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
