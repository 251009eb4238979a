package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput))
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestSetVerbosity(t *testing.T) {
	defer SetVerbosity(VerbosityUser)

	SetVerbosity(VerbosityDebug)
	assert.Equal(t, zapcore.DebugLevel, Level())

	SetVerbosity(VerbosityUser)
	assert.Equal(t, zapcore.WarnLevel, Level())
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Info (-v)", LevelName(1))
	assert.Equal(t, "Trace (-vvv)", LevelName(7))
	assert.True(t, ShouldLogTrace(3))
	assert.False(t, ShouldLogTrace(2))
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	original := Logger
	Logger = zap.New(core).Sugar()
	defer func() { Logger = original }()

	ctx := WithRequestID(context.Background(), "req-42")
	ctx = WithComponent(ctx, "server")

	LoggerFromContext(ctx).Infow("parsed", FieldEntities, 3)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields[FieldRequestID])
	assert.Equal(t, "server", fields[FieldComponent])
	assert.EqualValues(t, 3, fields[FieldEntities])
	assert.Equal(t, "req-42", RequestIDFromContext(ctx))
}

func TestLoggerFromContextWithoutFields(t *testing.T) {
	assert.Same(t, Logger, LoggerFromContext(context.Background()))
	assert.Empty(t, FieldsFromContext(context.Background()))
}

func TestComponentLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	original := Logger
	Logger = zap.New(core).Sugar()
	defer func() { Logger = original }()

	ComponentLogger("engine").Debugw("fixed point reached", FieldRounds, 2)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "engine", logs.All()[0].LoggerName)
}
