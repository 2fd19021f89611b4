// Package whisper wraps the OpenAI audio transcription API.
//
// The client uploads an extracted audio track as multipart form data and
// requests the verbose JSON response format so segment-level timestamps are
// available to the subtitle generator.
package whisper
