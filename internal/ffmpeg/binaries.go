// Package ffmpeg finds the ffmpeg and ffprobe executables.
package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var ErrNotFound = errors.New("ffmpeg binaries not found")

// overridden in tests
var lookPath = exec.LookPath

// Locate resolves each binary from, in order: the explicit path, the
// SRTKIT_FFMPEG_PATH / SRTKIT_FFPROBE_PATH environment variables, then PATH.
func Locate(explicit BinaryPaths) (BinaryPaths, error) {
	ffmpegPath, err := resolve(explicit.FFmpeg, "SRTKIT_FFMPEG_PATH", "ffmpeg")
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := resolve(explicit.FFprobe, "SRTKIT_FFPROBE_PATH", "ffprobe")
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func resolve(explicit, envVar, name string) (string, error) {
	if explicit != "" {
		if !fileExists(explicit) {
			return "", fmt.Errorf("%s not found at %s: %w", name, explicit, ErrNotFound)
		}
		return explicit, nil
	}
	if fromEnv := os.Getenv(envVar); fromEnv != "" {
		if !fileExists(fromEnv) {
			return "", fmt.Errorf("%s=%s does not exist: %w", envVar, fromEnv, ErrNotFound)
		}
		return fromEnv, nil
	}
	found, err := lookPath(name)
	if err != nil {
		return "", fmt.Errorf(
			"%s is not in PATH (set %s): %w",
			name,
			envVar,
			ErrNotFound,
		)
	}
	return found, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
