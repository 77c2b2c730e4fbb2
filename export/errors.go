package export

import "fmt"

// ErrorKind classifies a failed export attempt. Every failure is terminal
// for that attempt; nothing retries automatically and nothing crashes the
// hosting service.
type ErrorKind string

const (
	// KindMissingRenderTarget — no document is mounted at the requested id.
	KindMissingRenderTarget ErrorKind = "missing_render_target"

	// KindCapabilityUnavailable — the conversion engine was not resolved at
	// startup. The user is asked to retry shortly; no polling happens.
	KindCapabilityUnavailable ErrorKind = "capability_unavailable"

	// KindConversionFailure — the engine call or the final save failed.
	KindConversionFailure ErrorKind = "conversion_failure"
)

// Error is the typed failure result of an export attempt. Message carries
// the user-visible wording; Err the underlying cause, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export: %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("export: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// User-visible notices, fixed wording.
const (
	msgMissingTarget = "Fehler: Dokument für PDF-Erstellung nicht gefunden."
	msgUnavailable   = "PDF-System lädt noch. Bitte kurz warten und erneut versuchen."
	msgConversion    = "Fehler beim Erstellen der PDF-Datei."
)
