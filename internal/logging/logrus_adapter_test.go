package logging

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(level logrus.Level) (Logger, *bytes.Buffer) {
	logrusLogger := logrus.New()
	var buf bytes.Buffer
	logrusLogger.SetOutput(&buf)
	logrusLogger.SetLevel(level)
	logrusLogger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return NewLogrusAdapterFromLogger(logrusLogger), &buf
}

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
	}{
		{name: "debug level with text format", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "info level with json format", level: "info", format: "json", expectLevel: logrus.InfoLevel},
		{name: "upper-case level", level: "WARN", format: "text", expectLevel: logrus.WarnLevel},
		{name: "invalid level defaults to info", level: "chatty", format: "text", expectLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogrusAdapter(tt.level, tt.format)
			require.NotNil(t, logger)

			adapter, ok := logger.(*LogrusAdapter)
			require.True(t, ok, "logger should be a LogrusAdapter")
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			if tt.format == "json" {
				_, ok := adapter.logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "formatter should be JSONFormatter")
			} else {
				_, ok := adapter.logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "formatter should be TextFormatter")
			}
		})
	}
}

func TestNewLogrusAdapterWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("info", "json", &buf)
	logger.Info("pattern learned", Field{Key: FieldPattern, Value: "paid to dad"})

	assert.Contains(t, buf.String(), `"pattern":"paid to dad"`)
	assert.Contains(t, buf.String(), "pattern learned")
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	logger := NewLogrusAdapterFromLogger(nil)
	adapter, ok := logger.(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

func TestLogrusAdapter_LoggingMethods(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...Field)
		message string
		field   Field
	}{
		{"Debug", func(l Logger, msg string, f ...Field) { l.Debug(msg, f...) }, "debug message", Field{Key: FieldSlot, Value: "credit_patterns"}},
		{"Info", func(l Logger, msg string, f ...Field) { l.Info(msg, f...) }, "info message", Field{Key: FieldCategory, Value: "Transport"}},
		{"Warn", func(l Logger, msg string, f ...Field) { l.Warn(msg, f...) }, "warn message", Field{Key: FieldReason, Value: "corrupt record"}},
		{"Error", func(l Logger, msg string, f ...Field) { l.Error(msg, f...) }, "error message", Field{Key: FieldBackend, Value: "sqlite"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferedLogger(logrus.DebugLevel)
			tt.logFunc(logger, tt.message, tt.field)

			output := buf.String()
			assert.Contains(t, output, tt.message)
			assert.Contains(t, output, tt.field.Key)
		})
	}
}

func TestLogrusAdapter_ChainedCalls(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.InfoLevel)

	logger.
		WithField(FieldComponent, "store").
		WithFields(Field{Key: FieldSlot, Value: "upi_mappings"}).
		WithError(errors.New("disk full")).
		Error("write failed")

	output := buf.String()
	assert.Contains(t, output, "write failed")
	assert.Contains(t, output, "store")
	assert.Contains(t, output, "upi_mappings")
	assert.Contains(t, output, "disk full")
}

func TestLogrusAdapter_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(logrus.WarnLevel)
	logger.Debug("hidden")
	logger.Info("hidden too")
	assert.Empty(t, buf.String())

	logger.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestConvertFields(t *testing.T) {
	logrusFields := convertFields([]Field{
		{Key: "key1", Value: "value1"},
		{Key: "key2", Value: 42},
	})
	assert.Len(t, logrusFields, 2)
	assert.Equal(t, "value1", logrusFields["key1"])
	assert.Equal(t, 42, logrusFields["key2"])

	assert.Len(t, convertFields(nil), 0)
}

func TestGetLogger_DefaultAndOverride(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	SetDefault(nil)
	first := GetLogger()
	require.NotNil(t, first)
	assert.Same(t, first, GetLogger())

	mock := NewMockLogger()
	SetDefault(mock)
	assert.Same(t, mock, GetLogger())
	assert.Same(t, mock, OrDefault(nil))

	other := NewMockLogger()
	assert.Same(t, other, OrDefault(other))
}

func TestMockLogger_SharedSink(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldComponent, "gate").WithError(errors.New("boom"))
	child.Warn("fail-open", Field{Key: FieldReason, Value: "corrupt"})

	entries := mock.GetEntriesByLevel("WARN")
	require.Len(t, entries, 1)
	assert.Equal(t, "fail-open", entries[0].Message)
	assert.Len(t, entries[0].Fields, 2)
	assert.EqualError(t, entries[0].Error, "boom")
	assert.True(t, mock.HasEntry("WARN", "fail-open"))

	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestMockLogger_Concurrent(t *testing.T) {
	mock := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mock.WithField(FieldCount, 1).Debug("tick")
		}()
	}
	wg.Wait()
	assert.Len(t, mock.GetEntries(), 20)
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
