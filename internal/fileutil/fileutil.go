package fileutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SupportedVideoExtensions lists the container formats the pipeline accepts.
var SupportedVideoExtensions = []string{".mp4", ".mov"}

// IsSupportedVideo reports whether path carries a supported video extension.
// The check is purely name-based; the file does not have to exist.
func IsSupportedVideo(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedVideoExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// IsReadableFile reports whether path names an existing regular file that the
// current process can open for reading.
func IsReadableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// EnsureWritableDir makes sure the directory exists, creating it if needed,
// and verifies it accepts new files.
func EnsureWritableDir(dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".vidsub-write-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

// TempAudioPath returns a unique path in dir for an intermediate audio file.
// dir defaults to the system temp directory when empty. The file is not
// created; callers hand the path to ffmpeg.
func TempAudioPath(dir, ext string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	if ext == "" {
		ext = ".ogg"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(dir, "vidsub-audio-"+uuid.NewString()+ext)
}

// OutputSRTPath derives the subtitle path for a video by swapping the
// extension for .srt.
func OutputSRTPath(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + ".srt"
}

// RemoveQuietly deletes path, ignoring all errors. Used for temp-file
// cleanup on pipeline exit.
func RemoveQuietly(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
