package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	assert.True(t, New(true).Core().Enabled(zapcore.DebugLevel))

	prod := New(false)
	assert.False(t, prod.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, prod.Core().Enabled(zapcore.WarnLevel))
}

func TestGetBeforeInit(t *testing.T) {
	if L == nil {
		assert.NotNil(t, Get())
	}
	Init(false)
	Init(true)
	assert.Same(t, L, Get())
	assert.False(t, Get().Core().Enabled(zapcore.InfoLevel), "only the first Init takes effect")
}

func TestFields(t *testing.T) {
	assert.Equal(t, zap.String("source", "a.xlsx"), Source("a.xlsx"))
	assert.Equal(t, zap.Strings("columns", []string{"a"}), Columns([]string{"a"}))
}
