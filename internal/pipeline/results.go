package pipeline

import (
	"vidsub/internal/media/ffprobe"
	"vidsub/internal/subtitle"
)

// VideoInfo summarizes the probed input container.
type VideoInfo struct {
	Duration   float64 `json:"duration"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	Resolution string  `json:"resolution"`
}

func videoInfoFromProbe(result ffprobe.Result) VideoInfo {
	info := VideoInfo{
		Duration:   result.DurationSeconds(),
		FPS:        result.FrameRate(),
		Resolution: result.Resolution(),
	}
	if stream, ok := result.VideoStream(); ok {
		info.Width = stream.Width
		info.Height = stream.Height
	}
	return info
}

// AddResult reports a completed add operation.
type AddResult struct {
	SRTFile               string         `json:"srt_file"`
	OutputVideo           string         `json:"output_video"`
	TranscriptionCost     float64        `json:"transcription_cost"`
	ProcessingTime        float64        `json:"processing_time"`
	SubtitleStats         subtitle.Stats `json:"subtitle_stats"`
	VideoInfo             VideoInfo      `json:"video_info"`
	TranscriptionLanguage string         `json:"transcription_language"`
}

// ExtractResult reports a completed extract operation.
type ExtractResult struct {
	SRTFile               string         `json:"srt_file"`
	TranscriptionCost     float64        `json:"transcription_cost"`
	SubtitleStats         subtitle.Stats `json:"subtitle_stats"`
	TranscriptionLanguage string         `json:"transcription_language"`
}

// EmbedResult reports a completed embed operation.
type EmbedResult struct {
	OutputVideo    string    `json:"output_video"`
	SubtitleFile   string    `json:"subtitle_file"`
	ProcessingTime float64   `json:"processing_time"`
	VideoInfo      VideoInfo `json:"video_info"`
}

// RefineResult reports a completed refine operation.
type RefineResult struct {
	InputFile  string `json:"input_file"`
	OutputFile string `json:"output_file"`
	Valid      bool   `json:"valid"`
}
