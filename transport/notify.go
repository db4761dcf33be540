package transport

import (
	"github.com/rs/zerolog"

	"github.com/campusfound/campusfound-go/apierror"
)

// Notifier renders classified failures to the user. Critical records go to
// Alert and must stay visible until dismissed; every other severity goes to
// Toast and may auto-expire.
type Notifier interface {
	Toast(rec *apierror.Record)
	Alert(rec *apierror.Record)
}

// NopNotifier discards every notification. It is the library default so that
// embedding applications opt in to user-facing output explicitly.
type NopNotifier struct{}

// Toast implements Notifier.
func (NopNotifier) Toast(*apierror.Record) {}

// Alert implements Notifier.
func (NopNotifier) Alert(*apierror.Record) {}

// LogNotifier renders notifications through a zerolog logger. Toasts log at
// warn level, alerts at error level with a persistent marker.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier returns a Notifier writing to log.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Toast implements Notifier.
func (n *LogNotifier) Toast(rec *apierror.Record) {
	if rec == nil {
		return
	}
	n.log.Warn().
		Str("error_type", rec.Type.String()).
		Str("severity", rec.Severity.String()).
		Int("code", rec.Code).
		Msg(rec.Message)
}

// Alert implements Notifier.
func (n *LogNotifier) Alert(rec *apierror.Record) {
	if rec == nil {
		return
	}
	n.log.Error().
		Str("error_type", rec.Type.String()).
		Str("severity", rec.Severity.String()).
		Int("code", rec.Code).
		Bool("persistent", true).
		Msg(rec.Message)
}
