// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package log

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSONL = "jsonl"
	FormatText  = "text"
)

// recordingWriter keeps the last write error so that Log can report it.
type recordingWriter struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

func (rw *recordingWriter) Write(p []byte) (int, error) {
	n, err := rw.w.Write(p)
	if err != nil {
		rw.mu.Lock()
		rw.err = err
		rw.mu.Unlock()
	}
	return n, err
}

func (rw *recordingWriter) Sync() error {
	return nil
}

func (rw *recordingWriter) takeError() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	err := rw.err
	rw.err = nil
	return err
}

// SimpleLogger is a Logger backed by zap that writes one entry per message.
type SimpleLogger struct {
	logger *zap.Logger
	writer *recordingWriter
}

func (s *SimpleLogger) Log(msg string, fields ...map[string]interface{}) error {
	zapFields := []zap.Field{}
	for _, m := range fields {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			zapFields = append(zapFields, zap.Any(k, m[k]))
		}
	}
	s.logger.Info(msg, zapFields...)
	if err := s.writer.takeError(); err != nil {
		return fmt.Errorf("error writing log entry %q: %w", msg, err)
	}
	return nil
}

// Sync flushes any buffered log entries.
func (s *SimpleLogger) Sync() error {
	return s.logger.Sync()
}

// NewSimpleLogger returns a logger writing to w in the given format, either "jsonl" or "text".
func NewSimpleLogger(w io.Writer, format string) (*SimpleLogger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case FormatJSONL, "":
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case FormatText:
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unknown log format %q, expecting %q or %q", format, FormatJSONL, FormatText)
	}

	rw := &recordingWriter{w: w}
	core := zapcore.NewCore(encoder, rw, zapcore.DebugLevel)

	return &SimpleLogger{
		logger: zap.New(core, zap.ErrorOutput(zapcore.AddSync(io.Discard))),
		writer: rw,
	}, nil
}
