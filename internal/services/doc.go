// Package services defines the error taxonomy shared by the external
// collaborators (ffmpeg, ffprobe, the Whisper API, the refiner LLM) and the
// subtitle engine. Callers classify failures with errors.Is against the
// exported sentinels rather than inspecting messages.
package services
