// Package pipeline orchestrates the subtitle workflows: probing the input
// video, extracting audio, transcribing it, generating the SRT document,
// and optionally burning the result back into a video.
//
// External collaborators (ffmpeg, the transcription API, the refinement
// model) sit behind small interfaces so tests can substitute fakes.
package pipeline
