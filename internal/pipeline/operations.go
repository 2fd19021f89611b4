package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"vidsub/internal/fileutil"
	"vidsub/internal/history"
	"vidsub/internal/logging"
	"vidsub/internal/services"
	"vidsub/internal/services/whisper"
	"vidsub/internal/subtitle"
)

const lockRetryDelay = 250 * time.Millisecond

// AddSubtitles runs the full workflow: transcribe the input video, write the
// SRT next to it, and burn the subtitles into outputVideo.
func (p *Pipeline) AddSubtitles(ctx context.Context, inputVideo, outputVideo, lang string) (AddResult, error) {
	var result AddResult
	started := time.Now()

	if err := p.validateInputs(ctx, inputVideo, outputVideo, lang); err != nil {
		return result, p.recordFailure(ctx, "add", inputVideo, outputVideo, lang, err)
	}

	probe, err := p.media.Probe(ctx, inputVideo)
	if err != nil {
		return result, p.recordFailure(ctx, "add", inputVideo, outputVideo, lang, err)
	}
	info := videoInfoFromProbe(probe)
	p.logger.Info("probed input video",
		logging.Float64("duration_seconds", info.Duration),
		logging.String("resolution", info.Resolution),
	)

	transcription, cost, err := p.transcribeVideo(ctx, inputVideo, lang)
	if err != nil {
		return result, p.recordFailure(ctx, "add", inputVideo, outputVideo, lang, err)
	}

	srtPath := fileutil.OutputSRTPath(inputVideo)
	if _, err := subtitle.GenerateSRTWithMax(transcription, srtPath, p.cfg.Subtitles.MaxCueSeconds); err != nil {
		return result, p.recordFailure(ctx, "add", inputVideo, outputVideo, lang, err)
	}
	stats, err := subtitle.ReadStats(srtPath)
	if err != nil {
		return result, p.recordFailure(ctx, "add", inputVideo, outputVideo, lang, err)
	}
	p.logger.Info("generated subtitles",
		logging.String("srt_file", srtPath),
		logging.Int("subtitle_count", stats.SubtitleCount),
	)

	if err := p.burnLocked(ctx, inputVideo, srtPath, outputVideo); err != nil {
		return result, p.recordFailure(ctx, "add", inputVideo, outputVideo, lang, err)
	}

	result = AddResult{
		SRTFile:               srtPath,
		OutputVideo:           outputVideo,
		TranscriptionCost:     cost,
		ProcessingTime:        estimateProcessingTime(info.Duration, true),
		SubtitleStats:         stats,
		VideoInfo:             info,
		TranscriptionLanguage: transcriptionLanguage(transcription, lang),
	}
	p.record(ctx, history.Run{
		Operation:         "add",
		InputPath:         inputVideo,
		OutputPath:        outputVideo,
		Language:          result.TranscriptionLanguage,
		SubtitleCount:     stats.SubtitleCount,
		DurationSeconds:   info.Duration,
		CostUSD:           cost,
		ProcessingSeconds: time.Since(started).Seconds(),
		Status:            history.StatusCompleted,
	})
	return result, nil
}

// ExtractSubtitles transcribes the input video and writes only the SRT
// document. An empty outputSRT derives the path from the video name.
func (p *Pipeline) ExtractSubtitles(ctx context.Context, inputVideo, outputSRT, lang string) (ExtractResult, error) {
	var result ExtractResult
	started := time.Now()

	if outputSRT == "" {
		outputSRT = fileutil.OutputSRTPath(inputVideo)
	}
	if err := p.validateInputs(ctx, inputVideo, outputSRT, lang); err != nil {
		return result, p.recordFailure(ctx, "extract", inputVideo, outputSRT, lang, err)
	}

	transcription, cost, err := p.transcribeVideo(ctx, inputVideo, lang)
	if err != nil {
		return result, p.recordFailure(ctx, "extract", inputVideo, outputSRT, lang, err)
	}

	if _, err := subtitle.GenerateSRTWithMax(transcription, outputSRT, p.cfg.Subtitles.MaxCueSeconds); err != nil {
		return result, p.recordFailure(ctx, "extract", inputVideo, outputSRT, lang, err)
	}
	stats, err := subtitle.ReadStats(outputSRT)
	if err != nil {
		return result, p.recordFailure(ctx, "extract", inputVideo, outputSRT, lang, err)
	}

	result = ExtractResult{
		SRTFile:               outputSRT,
		TranscriptionCost:     cost,
		SubtitleStats:         stats,
		TranscriptionLanguage: transcriptionLanguage(transcription, lang),
	}
	p.record(ctx, history.Run{
		Operation:         "extract",
		InputPath:         inputVideo,
		OutputPath:        outputSRT,
		Language:          result.TranscriptionLanguage,
		SubtitleCount:     stats.SubtitleCount,
		DurationSeconds:   transcription.Duration,
		CostUSD:           cost,
		ProcessingSeconds: time.Since(started).Seconds(),
		Status:            history.StatusCompleted,
	})
	return result, nil
}

// EmbedSubtitleFile burns an existing SRT document into a video without any
// transcription.
func (p *Pipeline) EmbedSubtitleFile(ctx context.Context, inputVideo, subtitleFile, outputVideo string) (EmbedResult, error) {
	var result EmbedResult
	started := time.Now()

	if err := p.media.Available(ctx); err != nil {
		return result, p.recordFailure(ctx, "embed", inputVideo, outputVideo, "", err)
	}
	if !fileutil.IsReadableFile(inputVideo) {
		err := services.Wrap(services.ErrValidation, "pipeline", "embed",
			fmt.Sprintf("input video file not found: %s", inputVideo), nil)
		return result, p.recordFailure(ctx, "embed", inputVideo, outputVideo, "", err)
	}
	if !fileutil.IsReadableFile(subtitleFile) {
		err := services.Wrap(services.ErrValidation, "pipeline", "embed",
			fmt.Sprintf("subtitle file not found: %s", subtitleFile), nil)
		return result, p.recordFailure(ctx, "embed", inputVideo, outputVideo, "", err)
	}
	if !strings.EqualFold(filepath.Ext(subtitleFile), ".srt") {
		err := services.Wrap(services.ErrValidation, "pipeline", "embed",
			"subtitle file must have .srt extension", nil)
		return result, p.recordFailure(ctx, "embed", inputVideo, outputVideo, "", err)
	}
	if err := fileutil.EnsureWritableDir(filepath.Dir(outputVideo)); err != nil {
		err = services.Wrap(services.ErrValidation, "pipeline", "embed",
			fmt.Sprintf("output directory is not writable: %s", filepath.Dir(outputVideo)), err)
		return result, p.recordFailure(ctx, "embed", inputVideo, outputVideo, "", err)
	}

	probe, err := p.media.Probe(ctx, inputVideo)
	if err != nil {
		return result, p.recordFailure(ctx, "embed", inputVideo, outputVideo, "", err)
	}
	info := videoInfoFromProbe(probe)

	if err := p.burnLocked(ctx, inputVideo, subtitleFile, outputVideo); err != nil {
		return result, p.recordFailure(ctx, "embed", inputVideo, outputVideo, "", err)
	}

	result = EmbedResult{
		OutputVideo:    outputVideo,
		SubtitleFile:   subtitleFile,
		ProcessingTime: estimateProcessingTime(info.Duration, true),
		VideoInfo:      info,
	}
	p.record(ctx, history.Run{
		Operation:         "embed",
		InputPath:         inputVideo,
		OutputPath:        outputVideo,
		DurationSeconds:   info.Duration,
		ProcessingSeconds: time.Since(started).Seconds(),
		Status:            history.StatusCompleted,
	})
	return result, nil
}

// RefineSubtitles passes an SRT document through the refinement model and
// writes the rewritten text to outputSRT.
func (p *Pipeline) RefineSubtitles(ctx context.Context, inputSRT, outputSRT, instruction string) (RefineResult, error) {
	var result RefineResult
	started := time.Now()

	if !fileutil.IsReadableFile(inputSRT) {
		err := services.Wrap(services.ErrValidation, "pipeline", "refine",
			fmt.Sprintf("subtitle file not found: %s", inputSRT), nil)
		return result, p.recordFailure(ctx, "refine", inputSRT, outputSRT, "", err)
	}
	if outputSRT == "" {
		outputSRT = inputSRT
	}

	content, err := os.ReadFile(inputSRT)
	if err != nil {
		err = services.Wrap(services.ErrRefinement, "pipeline", "refine", "read subtitle file", err)
		return result, p.recordFailure(ctx, "refine", inputSRT, outputSRT, "", err)
	}

	refined, err := p.refiner.Refine(ctx, string(content), instruction)
	if err != nil {
		return result, p.recordFailure(ctx, "refine", inputSRT, outputSRT, "", err)
	}

	if err := os.WriteFile(outputSRT, []byte(refined), 0o644); err != nil {
		err = services.Wrap(services.ErrRefinement, "pipeline", "refine", "write refined subtitle file", err)
		return result, p.recordFailure(ctx, "refine", inputSRT, outputSRT, "", err)
	}

	result = RefineResult{
		InputFile:  inputSRT,
		OutputFile: outputSRT,
		Valid:      subtitle.ValidateSRTFile(outputSRT),
	}
	if !result.Valid {
		p.logger.Warn("refined document failed SRT validation",
			logging.String("output_file", outputSRT))
	}
	p.record(ctx, history.Run{
		Operation:         "refine",
		InputPath:         inputSRT,
		OutputPath:        outputSRT,
		ProcessingSeconds: time.Since(started).Seconds(),
		Status:            history.StatusCompleted,
	})
	return result, nil
}

// transcribeVideo extracts a temporary audio track, estimates the cost, and
// runs the transcription. The temp file is removed before returning.
func (p *Pipeline) transcribeVideo(ctx context.Context, inputVideo, lang string) (subtitle.Transcription, float64, error) {
	var empty subtitle.Transcription

	if err := p.cfg.EnsureDirectories(); err != nil {
		return empty, 0, services.Wrap(services.ErrValidation, "pipeline", "transcribe", "prepare staging directory", err)
	}
	audioPath := fileutil.TempAudioPath(p.cfg.Paths.StagingDir, ".ogg")
	defer fileutil.RemoveQuietly(audioPath)

	p.logger.Info("extracting audio", logging.String("audio_file", audioPath))
	if err := p.media.ExtractAudio(ctx, inputVideo, audioPath); err != nil {
		return empty, 0, err
	}

	var audioDuration float64
	if probe, err := p.media.Probe(ctx, audioPath); err == nil {
		audioDuration = probe.DurationSeconds()
	}
	cost := whisper.EstimateCost(audioDuration)
	p.logger.Info("transcribing audio",
		logging.String("language", lang),
		logging.Float64("estimated_cost_usd", cost),
	)

	transcription, err := p.transcriber.Transcribe(ctx, audioPath, lang)
	if err != nil {
		return empty, cost, err
	}
	return transcription, cost, nil
}

// burnLocked serializes burns targeting the same output file across
// processes with an advisory file lock.
func (p *Pipeline) burnLocked(ctx context.Context, inputVideo, srtPath, outputVideo string) error {
	lock := flock.New(outputVideo + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return services.Wrap(services.ErrVideoProcessing, "pipeline", "lock",
			fmt.Sprintf("acquire output lock for %s", outputVideo), err)
	}
	if !locked {
		return services.Wrap(services.ErrVideoProcessing, "pipeline", "lock",
			fmt.Sprintf("another run is writing %s", outputVideo), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	p.logger.Info("burning subtitles",
		logging.String("subtitle_file", srtPath),
		logging.String("output_video", outputVideo),
	)
	return p.media.BurnSubtitles(ctx, inputVideo, srtPath, outputVideo)
}

func transcriptionLanguage(tr subtitle.Transcription, requested string) string {
	if lang := strings.TrimSpace(tr.Language); lang != "" {
		return lang
	}
	return requested
}

func (p *Pipeline) record(ctx context.Context, run history.Run) {
	if p.recorder == nil {
		return
	}
	if _, err := p.recorder.RecordRun(ctx, run); err != nil {
		p.logger.Warn("failed to record run history", logging.Error(err))
	}
}

func (p *Pipeline) recordFailure(ctx context.Context, operation, inputPath, outputPath, lang string, cause error) error {
	p.record(ctx, history.Run{
		Operation:    operation,
		InputPath:    inputPath,
		OutputPath:   outputPath,
		Language:     lang,
		Status:       history.StatusFailed,
		ErrorMessage: cause.Error(),
	})
	return cause
}
