// Package ffmpeg shells out to the ffmpeg binary for the two media
// transformations the pipeline needs: extracting a compressed mono audio
// track for transcription, and re-encoding a video with burned-in
// subtitles.
package ffmpeg
