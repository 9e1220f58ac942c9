package fetcher

import "testing"

func TestParseFilepath(t *testing.T) {
	tests := []struct {
		name      string
		out       string
		want      string
		shouldErr bool
	}{
		{"single line", "downloads/987.mp4\n", "downloads/987.mp4", false},
		{"trailing blank lines", "downloads/987.mp4\n\n\n", "downloads/987.mp4", false},
		{"noise before path", "warning: something\ndownloads/987.mp4\n", "downloads/987.mp4", false},
		{"windows newline", "downloads/987.mp4\r\n", "downloads/987.mp4", false},
		{"empty output", "", "", true},
		{"only whitespace", "  \n\t\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilepath(tt.out)
			if tt.shouldErr {
				if err == nil {
					t.Errorf("expected error, got path %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseFilepath(%q) = %q, want %q", tt.out, got, tt.want)
			}
		})
	}
}

func TestExtOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"downloads/987.mp4", "mp4"},
		{"downloads/987.MP4", "mp4"},
		{"downloads/clip.tar.gz", "gz"},
		{"downloads/noext", ""},
	}

	for _, tt := range tests {
		if got := extOf(tt.path); got != tt.want {
			t.Errorf("extOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNewYtDlpDefaults(t *testing.T) {
	y := NewYtDlp(Config{})

	if y.binary != "yt-dlp" {
		t.Errorf("unexpected default binary: %q", y.binary)
	}
	if y.dir != "downloads" {
		t.Errorf("unexpected default dir: %q", y.dir)
	}
	if y.format != "best[filesize<50M]" {
		t.Errorf("unexpected default format: %q", y.format)
	}
}

func TestNewYtDlpOverrides(t *testing.T) {
	y := NewYtDlp(Config{Dir: "/tmp/media", MaxSizeMB: 20, BinaryPath: "/usr/local/bin/yt-dlp"})

	if y.binary != "/usr/local/bin/yt-dlp" {
		t.Errorf("unexpected binary: %q", y.binary)
	}
	if y.dir != "/tmp/media" {
		t.Errorf("unexpected dir: %q", y.dir)
	}
	if y.format != "best[filesize<20M]" {
		t.Errorf("unexpected format: %q", y.format)
	}
}
