package config

const (
	defaultStagingDir            = "~/.local/share/vidsub/staging"
	defaultLogDir                = "~/.local/share/vidsub/logs"
	defaultDataDir               = "~/.local/share/vidsub"
	defaultTranscriptionBaseURL  = "https://api.openai.com/v1/audio/transcriptions"
	defaultTranscriptionModel    = "whisper-1"
	defaultTranscriptionTimeout  = 600
	defaultMaxUploadMiB          = 25
	defaultRefinerBaseURL        = "https://api.openai.com/v1/chat/completions"
	defaultRefinerModel          = "gpt-4o"
	defaultRefinerTimeoutSeconds = 120
	defaultMaxCueSeconds         = 5.0
	defaultFFmpegBinary          = "ffmpeg"
	defaultFFprobeBinary         = "ffprobe"
	defaultExtractTimeout        = 300
	defaultBurnTimeout           = 600
	defaultProbeTimeout          = 30
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
			DataDir:    defaultDataDir,
		},
		Transcription: Transcription{
			BaseURL:        defaultTranscriptionBaseURL,
			Model:          defaultTranscriptionModel,
			TimeoutSeconds: defaultTranscriptionTimeout,
			MaxUploadMiB:   defaultMaxUploadMiB,
		},
		Refiner: Refiner{
			BaseURL:        defaultRefinerBaseURL,
			Model:          defaultRefinerModel,
			TimeoutSeconds: defaultRefinerTimeoutSeconds,
		},
		Subtitles: Subtitles{
			MaxCueSeconds: defaultMaxCueSeconds,
		},
		FFmpeg: FFmpeg{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			ExtractTimeout: defaultExtractTimeout,
			BurnTimeout:    defaultBurnTimeout,
			ProbeTimeout:   defaultProbeTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
