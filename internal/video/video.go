package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/srtkit/internal/ffmpeg"
)

var ErrNoSubtitleStream = errors.New("no subtitle stream")

// a subtitle stream inside a media container
type StreamInfo struct {
	Index    int // position among subtitle streams, as used by 0:s:N
	Codec    string
	Language string
	Title    string
}

// subtitle operations on media containers
type Processor interface {
	// lists the subtitle streams of a video file
	SubtitleStreams(ctx context.Context, videoPath string) ([]StreamInfo, error)

	// writes one subtitle stream of a video file out as SRT
	ExtractSubtitles(
		ctx context.Context,
		videoPath, outputPath string,
		opts ExtractOptions,
	) error

	// muxes an SRT file into a copy of the video as a soft subtitle track
	EmbedSubtitles(
		ctx context.Context,
		videoPath, srtPath, outputPath string,
		opts EmbedOptions,
	) error
}

type ExtractOptions struct {
	Stream int // subtitle stream number, 0 is the first
}

type EmbedOptions struct {
	Language string // ISO 639-2 code such as "eng"; empty leaves it unset
	Title    string
}

// default implementation using ffmpeg
type DefaultProcessor struct {
	bins ffmpegbin.BinaryPaths
}

func NewProcessor(bins ffmpegbin.BinaryPaths) *DefaultProcessor {
	return &DefaultProcessor{bins: bins}
}

type ffprobeOutput struct {
	Streams []struct {
		CodecName string            `json:"codec_name"`
		Tags      map[string]string `json:"tags"`
	} `json:"streams"`
}

func (p *DefaultProcessor) SubtitleStreams(
	ctx context.Context,
	videoPath string,
) ([]StreamInfo, error) {
	if err := requireFile(videoPath); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, p.bins.FFprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "s",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseStreams(out.Bytes())
}

func parseStreams(data []byte) ([]StreamInfo, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	streams := make([]StreamInfo, 0, len(probe.Streams))
	for i, s := range probe.Streams {
		streams = append(streams, StreamInfo{
			Index:    i,
			Codec:    s.CodecName,
			Language: s.Tags["language"],
			Title:    s.Tags["title"],
		})
	}
	return streams, nil
}

func (p *DefaultProcessor) ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractOptions,
) error {
	if err := requireFile(videoPath); err != nil {
		return err
	}
	if opts.Stream < 0 {
		return fmt.Errorf("invalid subtitle stream %d", opts.Stream)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stream := extractStream(videoPath, outputPath, opts).
		SetFfmpegPath(p.bins.FFmpeg)
	if err := run(ctx, stream); err != nil {
		return fmt.Errorf("ffmpeg extraction of stream %d failed: %w", opts.Stream, err)
	}
	return nil
}

func extractStream(videoPath, outputPath string, opts ExtractOptions) *ffmpeg.Stream {
	return ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"map": fmt.Sprintf("0:s:%d", opts.Stream),
			"c:s": "srt",
			"f":   "srt",
		}).
		OverWriteOutput()
}

func (p *DefaultProcessor) EmbedSubtitles(
	ctx context.Context,
	videoPath, srtPath, outputPath string,
	opts EmbedOptions,
) error {
	if err := requireFile(srtPath); err != nil {
		return err
	}
	existing, err := p.SubtitleStreams(ctx, videoPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stream := embedStream(videoPath, srtPath, outputPath, len(existing), opts).
		SetFfmpegPath(p.bins.FFmpeg)
	if err := run(ctx, stream); err != nil {
		return fmt.Errorf("ffmpeg embedding failed: %w", err)
	}
	return nil
}

// every stream of the video is kept and the SRT becomes subtitle stream
// number existing in the output
func embedStream(
	videoPath, srtPath, outputPath string,
	existing int,
	opts EmbedOptions,
) *ffmpeg.Stream {
	kwargs := ffmpeg.KwArgs{
		"c":   "copy",
		"c:s": subtitleCodec(outputPath),
	}

	var metadata []string
	if opts.Language != "" {
		metadata = append(metadata, "language="+opts.Language)
	}
	if opts.Title != "" {
		metadata = append(metadata, "title="+opts.Title)
	}
	if len(metadata) > 0 {
		kwargs[fmt.Sprintf("metadata:s:s:%d", existing)] = metadata
	}

	inputs := []*ffmpeg.Stream{
		ffmpeg.Input(videoPath),
		ffmpeg.Input(srtPath, ffmpeg.KwArgs{"f": "srt"}),
	}
	return ffmpeg.Output(inputs, outputPath, kwargs).OverWriteOutput()
}

// mp4 family containers only carry mov_text; the rest take SRT as is
func subtitleCodec(outputPath string) string {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".mp4", ".m4v", ".mov":
		return "mov_text"
	case ".webm":
		return "webvtt"
	default:
		return "srt"
	}
}

func requireFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file not found: %s", path)
		}
		return err
	}
	return nil
}

// runs the compiled ffmpeg command, killing it when ctx is cancelled
func run(ctx context.Context, stream *ffmpeg.Stream) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := stream.Compile()
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	case err := <-done:
		if err == nil {
			return nil
		}
		msg := stderr.String()
		if strings.Contains(msg, "matches no streams") {
			return fmt.Errorf("%w: %s", ErrNoSubtitleStream, lastLine(msg))
		}
		return fmt.Errorf("%w: %s", err, lastLine(msg))
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
