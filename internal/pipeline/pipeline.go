package pipeline

import (
	"context"
	"log/slog"
	"time"

	"vidsub/internal/config"
	"vidsub/internal/history"
	"vidsub/internal/logging"
	"vidsub/internal/media/ffmpeg"
	"vidsub/internal/media/ffprobe"
	"vidsub/internal/services/refiner"
	"vidsub/internal/services/whisper"
	"vidsub/internal/subtitle"
)

// Transcriber converts an audio file into a timed transcription.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (subtitle.Transcription, error)
}

// Refiner rewrites a subtitle document according to an instruction.
type Refiner interface {
	Refine(ctx context.Context, subtitleText, instruction string) (string, error)
}

// Media abstracts the ffmpeg/ffprobe binaries.
type Media interface {
	Available(ctx context.Context) error
	Probe(ctx context.Context, path string) (ffprobe.Result, error)
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
	BurnSubtitles(ctx context.Context, videoPath, srtPath, outputPath string) error
}

// Recorder persists completed runs. The history store satisfies it.
type Recorder interface {
	RecordRun(ctx context.Context, run history.Run) (history.Run, error)
}

// Pipeline wires the collaborators together for the CLI operations.
type Pipeline struct {
	cfg         *config.Config
	logger      *slog.Logger
	media       Media
	transcriber Transcriber
	refiner     Refiner
	recorder    Recorder
}

// Option customizes a Pipeline, primarily for tests.
type Option func(*Pipeline)

// WithMedia substitutes the media tool implementation.
func WithMedia(media Media) Option {
	return func(p *Pipeline) {
		if media != nil {
			p.media = media
		}
	}
}

// WithTranscriber substitutes the transcription client.
func WithTranscriber(t Transcriber) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.transcriber = t
		}
	}
}

// WithRefiner substitutes the refinement client.
func WithRefiner(r Refiner) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.refiner = r
		}
	}
}

// WithRecorder attaches a run-history recorder.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) {
		p.recorder = r
	}
}

// New builds a Pipeline from configuration. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pipeline{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "pipeline"),
		media:  newMediaTools(cfg),
		transcriber: whisper.NewClient(whisper.Config{
			APIKey:         cfg.Transcription.APIKey,
			BaseURL:        cfg.Transcription.BaseURL,
			Model:          cfg.Transcription.Model,
			TimeoutSeconds: cfg.Transcription.TimeoutSeconds,
			MaxUploadMiB:   int(cfg.Transcription.MaxUploadMiB),
		}),
		refiner: refiner.NewClient(refiner.Config{
			APIKey:         cfg.Refiner.APIKey,
			BaseURL:        cfg.Refiner.BaseURL,
			Model:          cfg.Refiner.Model,
			TimeoutSeconds: cfg.Refiner.TimeoutSeconds,
		}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// mediaTools is the production Media implementation. It applies the
// configured per-operation timeouts.
type mediaTools struct {
	ffmpegBinary   string
	ffprobeBinary  string
	extractTimeout time.Duration
	burnTimeout    time.Duration
	probeTimeout   time.Duration
}

func newMediaTools(cfg *config.Config) *mediaTools {
	return &mediaTools{
		ffmpegBinary:   cfg.FFmpeg.FFmpegBinary,
		ffprobeBinary:  cfg.FFmpeg.FFprobeBinary,
		extractTimeout: time.Duration(cfg.FFmpeg.ExtractTimeout) * time.Second,
		burnTimeout:    time.Duration(cfg.FFmpeg.BurnTimeout) * time.Second,
		probeTimeout:   time.Duration(cfg.FFmpeg.ProbeTimeout) * time.Second,
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (m *mediaTools) Available(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()
	return ffmpeg.Available(ctx, m.ffmpegBinary)
}

func (m *mediaTools) Probe(ctx context.Context, path string) (ffprobe.Result, error) {
	ctx, cancel := withTimeout(ctx, m.probeTimeout)
	defer cancel()
	return ffprobe.Inspect(ctx, m.ffprobeBinary, path)
}

func (m *mediaTools) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	ctx, cancel := withTimeout(ctx, m.extractTimeout)
	defer cancel()
	return ffmpeg.ExtractAudio(ctx, m.ffmpegBinary, videoPath, audioPath)
}

func (m *mediaTools) BurnSubtitles(ctx context.Context, videoPath, srtPath, outputPath string) error {
	ctx, cancel := withTimeout(ctx, m.burnTimeout)
	defer cancel()
	return ffmpeg.BurnSubtitles(ctx, m.ffmpegBinary, videoPath, srtPath, outputPath, "")
}

// Processing-time rates observed in practice: burning re-encodes the video,
// stream-copy embedding does not.
const (
	burnRate  = 3.0
	embedRate = 0.15
)

func estimateProcessingTime(videoDuration float64, burn bool) float64 {
	if burn {
		return videoDuration * burnRate
	}
	return videoDuration * embedRate
}
