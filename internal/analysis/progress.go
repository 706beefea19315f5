package analysis

import (
	"patchpilot/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProgressSink receives progress updates. Updates are never returned to callers.
type ProgressSink interface {
	Progress(operation, id string, update models.ProgressUpdate)
}

// LogSink writes progress updates to a logrus logger.
type LogSink struct {
	Logger logrus.FieldLogger
}

func (s LogSink) Progress(operation, id string, update models.ProgressUpdate) {
	logger := s.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	fields := logrus.Fields{
		"op":       operation,
		"op_id":    id,
		"step":     update.Step,
		"progress": update.Progress,
	}
	if update.CurrentFile != "" {
		fields["file"] = update.CurrentFile
	}
	logger.WithFields(fields).Info(update.Message)
}

// tracker stamps every update of one operation with the same id.
type tracker struct {
	sink      ProgressSink
	operation string
	id        string
}

func newTracker(sink ProgressSink, operation string) *tracker {
	return &tracker{sink: sink, operation: operation, id: uuid.NewString()}
}

func (t *tracker) update(step string, progress int, message, currentFile string) {
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}
	t.sink.Progress(t.operation, t.id, models.ProgressUpdate{
		Step:        step,
		Progress:    progress,
		Message:     message,
		CurrentFile: currentFile,
	})
}
