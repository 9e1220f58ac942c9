package media

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		ext  string
		want Kind
	}{
		{"mp4", KindVideo},
		{"mkv", KindVideo},
		{"webm", KindVideo},
		{"jpg", KindImage},
		{"jpeg", KindImage},
		{"png", KindImage},
		{"gif", KindImage},
		{".mp4", KindVideo},
		{"MP4", KindVideo},
		{".GIF", KindImage},
		{"mp3", KindUnsupported},
		{"pdf", KindUnsupported},
		{"", KindUnsupported},
		{"mp4a", KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := Classify(tt.ext); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindVideo.String() != "video" || KindImage.String() != "image" || KindUnsupported.String() != "unsupported" {
		t.Errorf("unexpected Kind string values: %v %v %v", KindVideo, KindImage, KindUnsupported)
	}
}
