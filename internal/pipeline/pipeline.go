package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"relay_bot/internal/fetcher"
	"relay_bot/internal/logger"
	"relay_bot/internal/media"
	"relay_bot/internal/platform"
)

// Messenger is the set of chat operations the pipeline needs. SendText
// returns the ID of the newly posted message so it can be edited later.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, replyTo int, text string) (int, error)
	EditText(ctx context.Context, chatID int64, messageID int, text string) error
	SendVideo(ctx context.Context, chatID int64, replyTo int, video io.Reader, filename, caption string) error
	SendPhoto(ctx context.Context, chatID int64, replyTo int, photo io.Reader, filename, caption string) error
}

type stage string

const (
	stageDownload stage = "download"
	stageSend     stage = "send"
)

// stageError tags a failure with the pipeline stage it occurred in.
type stageError struct {
	stage stage
	err   error
}

func (e *stageError) Error() string { return fmt.Sprintf("%s stage: %v", e.stage, e.err) }
func (e *stageError) Unwrap() error { return e.err }

// Pipeline runs one relay job per matched link: announce, download,
// classify, deliver, clean up. All user-visible progress for a job goes
// through a single status message that is edited in place.
type Pipeline struct {
	fetcher fetcher.Fetcher
	chat    Messenger
}

// New creates a Pipeline.
func New(f fetcher.Fetcher, chat Messenger) *Pipeline {
	return &Pipeline{fetcher: f, chat: chat}
}

// Process relays the media behind link into the chat. It never returns an
// error and never panics past itself: every failure ends in a user-facing
// message and a log entry. The downloaded file, if any, is removed exactly
// once, after the last send/edit attempt.
func (p *Pipeline) Process(ctx context.Context, chatID int64, replyTo int, link platform.Link) {
	jobID := uuid.NewString()
	logger.L().Debugf("Starting relay job: job_id=%s platform=%s url=%s", jobID, link.Platform, link.URL)

	statusID, err := p.chat.SendText(ctx, chatID, replyTo,
		fmt.Sprintf("Processing media from %s...", link.Platform.Title()))
	if err != nil {
		logger.L().Errorf("Relay job %s: failed to post status message: %v", jobID, err)
		p.reportFailure(ctx, jobID, chatID, replyTo, 0, link, media.KindUnsupported)
		return
	}

	res, err := p.fetcher.Fetch(ctx, link.URL)
	if err != nil {
		logger.L().Errorf("Relay job %s: download failed: %v", jobID, err)
		p.reportFailure(ctx, jobID, chatID, replyTo, statusID, link, media.KindUnsupported)
		return
	}
	logger.L().Debugf("Relay job %s: downloaded file %s", jobID, res.Path)

	// The file is owned by this job from here on. The deferred remove is
	// the single cleanup point for every terminal path below.
	defer p.cleanup(jobID, res.Path)

	kind := media.Classify(res.Ext)
	if serr := p.deliver(ctx, chatID, replyTo, statusID, link, res.Path, kind); serr != nil {
		logger.L().Errorf("Relay job %s: %v", jobID, serr)
		p.reportFailure(ctx, jobID, chatID, replyTo, statusID, link, kind)
		return
	}

	logger.L().Debugf("Relay job %s: done", jobID)
}

// deliver dispatches on the attachment kind and drives the status message
// through the sending phase. An unsupported kind is a normal terminal
// outcome, not a failure.
func (p *Pipeline) deliver(ctx context.Context, chatID int64, replyTo, statusID int, link platform.Link, path string, kind media.Kind) *stageError {
	switch kind {
	case media.KindVideo:
		return p.relayAttachment(ctx, chatID, replyTo, statusID, link, path, "video", p.chat.SendVideo)
	case media.KindImage:
		return p.relayAttachment(ctx, chatID, replyTo, statusID, link, path, "photo", p.chat.SendPhoto)
	default:
		text := fmt.Sprintf("Sorry, unsupported media type from %s.", link.Platform)
		if err := p.chat.EditText(ctx, chatID, statusID, text); err != nil {
			return &stageError{stageSend, err}
		}
		return nil
	}
}

type sendFunc func(ctx context.Context, chatID int64, replyTo int, file io.Reader, filename, caption string) error

// relayAttachment performs the edit/open/send/edit sequence shared by the
// video and photo branches. noun is "video" or "photo" as it appears in
// the status texts.
func (p *Pipeline) relayAttachment(ctx context.Context, chatID int64, replyTo, statusID int, link platform.Link, path, noun string, send sendFunc) *stageError {
	title := link.Platform.Title()

	if err := p.chat.EditText(ctx, chatID, statusID, fmt.Sprintf("Sending %s from %s...", noun, title)); err != nil {
		return &stageError{stageSend, err}
	}

	f, err := os.Open(path)
	if err != nil {
		return &stageError{stageSend, err}
	}
	defer f.Close()

	caption := fmt.Sprintf("From %s: %s", title, link.URL)
	if err := send(ctx, chatID, replyTo, f, filepath.Base(path), caption); err != nil {
		return &stageError{stageSend, err}
	}

	if err := p.chat.EditText(ctx, chatID, statusID, capitalize(noun)+" sent successfully!"); err != nil {
		return &stageError{stageSend, err}
	}

	return nil
}

// reportFailure edits the status message to a platform-attributed error,
// falling back to a fresh reply if the edit fails. It never propagates.
// kind selects the "video" vs generic "media" wording.
func (p *Pipeline) reportFailure(ctx context.Context, jobID string, chatID int64, replyTo, statusID int, link platform.Link, kind media.Kind) {
	label := "media"
	if kind == media.KindVideo {
		label = "video"
	}
	text := fmt.Sprintf("Error sending %s from %s. Please try again or use a different link.", label, link.Platform.Title())

	if statusID != 0 {
		err := p.chat.EditText(ctx, chatID, statusID, text)
		if err == nil {
			return
		}
		logger.L().Errorf("Relay job %s: failed to edit status message: %v", jobID, err)
	}

	if _, err := p.chat.SendText(ctx, chatID, replyTo, text); err != nil {
		logger.L().Errorf("Relay job %s: failed to send error reply: %v", jobID, err)
	}
}

// cleanup removes the downloaded file. Failures are logged and otherwise
// ignored; they do not change the job's outcome.
func (p *Pipeline) cleanup(jobID, path string) {
	logger.L().Debugf("Relay job %s: cleaning up file %s", jobID, path)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.L().Errorf("Relay job %s: failed to remove %s: %v", jobID, path, err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
