package populate

import "time"

const (
	EventRunStarted      = "run.started"
	EventDirectoryReady  = "directory.ready"
	EventImageWritten    = "image.written"
	EventImageFailed     = "image.failed"
	EventManifestWritten = "manifest.written"
	EventRunFinished     = "run.finished"
)

// Event is a progress notification. Sinks must not block the run.
type Event struct {
	Type     string    `json:"type"`
	RunID    string    `json:"run_id,omitempty"`
	Mode     Mode      `json:"mode,omitempty"`
	Category string    `json:"category,omitempty"`
	File     string    `json:"file,omitempty"`
	Message  string    `json:"message,omitempty"`
	Acquired int       `json:"acquired,omitempty"`
	Failed   int       `json:"failed,omitempty"`
	At       time.Time `json:"at"`
}

type EventSink interface {
	Publish(Event)
}
