// Command vidsub generates, refines, and burns SRT subtitles for video
// files using ffmpeg and the OpenAI transcription API.
package main
