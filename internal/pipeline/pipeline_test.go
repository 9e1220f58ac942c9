package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"relay_bot/internal/fetcher"
	"relay_bot/internal/platform"
)

type fakeFetcher struct {
	result *fetcher.Result
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*fetcher.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeMessenger records every chat operation in order as "op:text".
type fakeMessenger struct {
	calls []string

	sendTextErr  error
	editErr      error
	sendVideoErr error
	sendPhotoErr error

	nextMessageID int
}

func (m *fakeMessenger) SendText(ctx context.Context, chatID int64, replyTo int, text string) (int, error) {
	m.calls = append(m.calls, "send:"+text)
	if m.sendTextErr != nil {
		return 0, m.sendTextErr
	}
	m.nextMessageID++
	return m.nextMessageID, nil
}

func (m *fakeMessenger) EditText(ctx context.Context, chatID int64, messageID int, text string) error {
	m.calls = append(m.calls, "edit:"+text)
	return m.editErr
}

func (m *fakeMessenger) SendVideo(ctx context.Context, chatID int64, replyTo int, video io.Reader, filename, caption string) error {
	m.calls = append(m.calls, "video:"+filename+":"+caption)
	if m.sendVideoErr != nil {
		return m.sendVideoErr
	}
	// The pipeline must hand over an open, readable file.
	_, err := io.ReadAll(video)
	return err
}

func (m *fakeMessenger) SendPhoto(ctx context.Context, chatID int64, replyTo int, photo io.Reader, filename, caption string) error {
	m.calls = append(m.calls, "photo:"+filename+":"+caption)
	return m.sendPhotoErr
}

func writeTempMedia(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("media-bytes"), 0o644))
	return path
}

func tiktokLink() platform.Link {
	return platform.Link{
		Platform: platform.TikTok,
		URL:      "https://www.tiktok.com/@someuser/video/987",
	}
}

func TestProcessVideoSuccess(t *testing.T) {
	path := writeTempMedia(t, "987.mp4")
	f := &fakeFetcher{result: &fetcher.Result{Path: path, Ext: "mp4"}}
	chat := &fakeMessenger{}

	New(f, chat).Process(context.Background(), 100, 7, tiktokLink())

	require.Equal(t, []string{
		"send:Processing media from Tiktok...",
		"edit:Sending video from Tiktok...",
		"video:987.mp4:From Tiktok: https://www.tiktok.com/@someuser/video/987",
		"edit:Video sent successfully!",
	}, chat.calls)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "downloaded file must be removed after the job")
}

func TestProcessImageSuccess(t *testing.T) {
	path := writeTempMedia(t, "pic.jpg")
	f := &fakeFetcher{result: &fetcher.Result{Path: path, Ext: "jpg"}}
	chat := &fakeMessenger{}

	New(f, chat).Process(context.Background(), 100, 7, tiktokLink())

	require.Equal(t, []string{
		"send:Processing media from Tiktok...",
		"edit:Sending photo from Tiktok...",
		"photo:pic.jpg:From Tiktok: https://www.tiktok.com/@someuser/video/987",
		"edit:Photo sent successfully!",
	}, chat.calls)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestProcessDownloadFailure(t *testing.T) {
	f := &fakeFetcher{err: errors.New("network unreachable")}
	chat := &fakeMessenger{}

	New(f, chat).Process(context.Background(), 100, 7, tiktokLink())

	// No "Sending..." edit and no attachment; the status message ends in a
	// generic media error naming the platform.
	require.Equal(t, []string{
		"send:Processing media from Tiktok...",
		"edit:Error sending media from Tiktok. Please try again or use a different link.",
	}, chat.calls)
}

func TestProcessUnsupportedType(t *testing.T) {
	path := writeTempMedia(t, "track.mp3")
	f := &fakeFetcher{result: &fetcher.Result{Path: path, Ext: "mp3"}}
	chat := &fakeMessenger{}

	New(f, chat).Process(context.Background(), 100, 7, tiktokLink())

	require.Equal(t, []string{
		"send:Processing media from Tiktok...",
		"edit:Sorry, unsupported media type from tiktok.",
	}, chat.calls)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "cleanup must also run on the unsupported branch")
}

func TestProcessSendFailure(t *testing.T) {
	path := writeTempMedia(t, "987.mp4")
	f := &fakeFetcher{result: &fetcher.Result{Path: path, Ext: "mp4"}}
	chat := &fakeMessenger{sendVideoErr: errors.New("upload rejected")}

	New(f, chat).Process(context.Background(), 100, 7, tiktokLink())

	require.Equal(t, []string{
		"send:Processing media from Tiktok...",
		"edit:Sending video from Tiktok...",
		"video:987.mp4:From Tiktok: https://www.tiktok.com/@someuser/video/987",
		"edit:Error sending video from Tiktok. Please try again or use a different link.",
	}, chat.calls)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "cleanup must still run when the upload fails")
}

func TestProcessOpenFailure(t *testing.T) {
	// Fetcher reports a path that does not exist, so the open fails.
	missing := filepath.Join(t.TempDir(), "gone.mp4")
	f := &fakeFetcher{result: &fetcher.Result{Path: missing, Ext: "mp4"}}
	chat := &fakeMessenger{}

	New(f, chat).Process(context.Background(), 100, 7, tiktokLink())

	require.Equal(t, []string{
		"send:Processing media from Tiktok...",
		"edit:Sending video from Tiktok...",
		"edit:Error sending video from Tiktok. Please try again or use a different link.",
	}, chat.calls)
}

func TestProcessEditFailureFallsBackToReply(t *testing.T) {
	path := writeTempMedia(t, "987.mp4")
	f := &fakeFetcher{result: &fetcher.Result{Path: path, Ext: "mp4"}}
	chat := &fakeMessenger{editErr: errors.New("message is too old")}

	New(f, chat).Process(context.Background(), 100, 7, tiktokLink())

	// First edit fails, the error edit fails too, so the error surfaces as
	// a fresh reply instead.
	require.Equal(t, []string{
		"send:Processing media from Tiktok...",
		"edit:Sending video from Tiktok...",
		"edit:Error sending video from Tiktok. Please try again or use a different link.",
		"send:Error sending video from Tiktok. Please try again or use a different link.",
	}, chat.calls)

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestProcessStatusPostFailureSkipsDownload(t *testing.T) {
	f := &fakeFetcher{result: &fetcher.Result{Path: "unused.mp4", Ext: "mp4"}}
	chat := &fakeMessenger{sendTextErr: errors.New("chat not found")}

	New(f, chat).Process(context.Background(), 100, 7, tiktokLink())

	require.Zero(t, f.calls, "no download without a status message")
	require.Equal(t, []string{
		"send:Processing media from Tiktok...",
		"send:Error sending media from Tiktok. Please try again or use a different link.",
	}, chat.calls)
}

func TestStageErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &stageError{stageSend, cause}

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "send stage")
}
