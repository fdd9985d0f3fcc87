// Package apperr defines the closed set of failures the voicebot core reports
// to its callers.
//
// Collaborator errors (completion, transcription, speech synthesis) are caught
// at the dispatch boundary and re-wrapped into one of these kinds. Transports
// map a Kind to a status code and render Detail to the client; anything that is
// not an *Error is reported as a generic internal failure.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates the failure categories.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors outside the taxonomy.
	KindUnknown Kind = iota

	// KindAPIKeyMissing means the credential for an external service is absent.
	KindAPIKeyMissing

	// KindAudioProcessing means an uploaded audio payload could not be handled.
	KindAudioProcessing

	// KindTextGeneration means the persona reply could not be produced.
	KindTextGeneration

	// KindSpeechGeneration means text could not be converted to audio.
	KindSpeechGeneration
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindAPIKeyMissing:
		return "api_key_missing"
	case KindAudioProcessing:
		return "audio_processing_failure"
	case KindTextGeneration:
		return "text_generation_failure"
	case KindSpeechGeneration:
		return "speech_generation_failure"
	default:
		return "unknown"
	}
}

// HTTPStatus returns the fixed status code for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindAPIKeyMissing:
		return http.StatusUnauthorized
	case KindAudioProcessing:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure with a human-readable detail.
type Error struct {
	Kind   Kind
	Detail string

	// Service names the external service for KindAPIKeyMissing.
	Service string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// APIKeyMissing reports that the credential for service is not configured.
func APIKeyMissing(service string) *Error {
	return &Error{
		Kind:    KindAPIKeyMissing,
		Detail:  service + " API key missing",
		Service: service,
	}
}

// AudioProcessing reports a problem with an uploaded audio payload.
func AudioProcessing(detail string, cause error) *Error {
	return &Error{Kind: KindAudioProcessing, Detail: withCause(detail, cause), Err: cause}
}

// TextGeneration wraps a failure on the completion path.
func TextGeneration(cause error) *Error {
	return &Error{
		Kind:   KindTextGeneration,
		Detail: withCause("Failed to generate AI response", cause),
		Err:    cause,
	}
}

// SpeechGeneration reports a problem turning text into audio.
func SpeechGeneration(detail string, cause error) *Error {
	return &Error{Kind: KindSpeechGeneration, Detail: withCause(detail, cause), Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func withCause(detail string, cause error) string {
	if cause == nil {
		return detail
	}
	return detail + ": " + cause.Error()
}
