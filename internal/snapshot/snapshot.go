// Package snapshot records computed score batches: a rotating JSONL audit
// log on disk plus a bounded in-memory history of recent batch summaries.
package snapshot

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"liveable/internal/score"
	"liveable/internal/utils"
)

// Summary condenses one computed batch for history and audit purposes.
type Summary struct {
	ComputedAt    time.Time `json:"computedAt"`
	Districts     int       `json:"districts"`
	MeanOverall   float64   `json:"meanOverall"`
	ComputeTimeMS int64     `json:"computeTime"`
}

// Summarize reduces a batch to its summary record.
func Summarize(batch *score.Batch) Summary {
	total := 0
	for _, c := range batch.Districts {
		total += c.Overall
	}
	mean := 0.0
	if len(batch.Districts) > 0 {
		mean = float64(total) / float64(len(batch.Districts))
	}
	return Summary{
		ComputedAt:    batch.LastUpdated,
		Districts:     len(batch.Districts),
		MeanOverall:   mean,
		ComputeTimeMS: batch.ComputeTimeMS,
	}
}

// jsonlHandler is a slog handler emitting one flat JSON object per record
// with a plain timestamp and no level field, suitable for long-term
// line-oriented collection.
type jsonlHandler struct {
	out io.Writer
}

func (h *jsonlHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	attrs["time"] = r.Time.Format("2006-01-02 15:04:05")

	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "" && a.Value.Any() != nil {
			attrs[a.Key] = a.Value.Any()
		}
		return true
	})

	data, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	_, err = h.out.Write(append(data, '\n'))
	return err
}

func (h *jsonlHandler) WithAttrs([]slog.Attr) slog.Handler { panic("WithAttrs is not supported") }
func (h *jsonlHandler) WithGroup(string) slog.Handler      { panic("WithGroup is not supported") }
func (h *jsonlHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Log appends batch summaries to a JSONL file with rotation and compression
// via lumberjack.
type Log struct {
	lumberjack *lumberjack.Logger
	logger     *slog.Logger
}

// NewLog creates a snapshot log writing to file, rotating at maxSize MB and
// keeping maxBackups compressed rotations.
func NewLog(file string, maxSize, maxBackups int) *Log {
	l := &Log{
		lumberjack: &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		},
	}
	l.logger = slog.New(&jsonlHandler{out: l.lumberjack})
	return l
}

// Append writes one batch summary line.
func (l *Log) Append(s Summary) {
	l.logger.Info("",
		"computedAt", s.ComputedAt.Format(time.RFC3339),
		"districts", s.Districts,
		"meanOverall", s.MeanOverall,
		"computeTime", s.ComputeTimeMS,
	)
}

// Close flushes and closes the underlying file.
func (l *Log) Close() error {
	return l.lumberjack.Close()
}

// Recorder keeps the recent batch history in memory and mirrors each batch
// to an optional on-disk log. It implements the scorer.Recorder contract.
type Recorder struct {
	history *utils.RingBuffer[Summary]
	log     *Log // optional
}

// NewRecorder creates a recorder keeping the last n summaries. log may be
// nil to disable the audit file.
func NewRecorder(n int, log *Log) *Recorder {
	return &Recorder{
		history: utils.NewRingBuffer[Summary](n),
		log:     log,
	}
}

// Record stores the batch summary and appends it to the audit log.
func (r *Recorder) Record(batch *score.Batch) {
	s := Summarize(batch)
	r.history.Push(s)
	if r.log != nil {
		r.log.Append(s)
	}
}

// History returns the recorded summaries, oldest first.
func (r *Recorder) History() []Summary {
	return r.history.ToSlice()
}
