package fetcher

import "context"

// Result describes a file produced by a fetch.
type Result struct {
	Path string // local path of the downloaded file
	Ext  string // lowercased extension without the dot, e.g. "mp4"
}

// Fetcher defines the contract for resolving a URL into a local media file.
// The caller owns the returned file and is responsible for removing it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}
