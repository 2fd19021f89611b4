// Package language tracks the ISO 639-1 codes accepted by the transcription
// service and maps them to human-readable names.
package language
