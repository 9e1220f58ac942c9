package media

import "strings"

// Kind is the closed set of attachment types the bot can deliver.
type Kind int

const (
	KindUnsupported Kind = iota
	KindVideo
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindImage:
		return "image"
	default:
		return "unsupported"
	}
}

var (
	videoExts = map[string]bool{"mp4": true, "mkv": true, "webm": true}
	imageExts = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true}
)

// Classify maps a file extension to an attachment kind. The extension may
// be given with or without a leading dot and in any case.
func Classify(ext string) Kind {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch {
	case videoExts[ext]:
		return KindVideo
	case imageExts[ext]:
		return KindImage
	default:
		return KindUnsupported
	}
}
