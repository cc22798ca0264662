package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullLogger(t *testing.T) {
	var l Logger = NullLogger{}

	assert.NotPanics(t, func() {
		l.Info("info", StringField("k", "v"))
		l.Warn("warn")
		l.Error("error", ErrorField(nil))
		l.Debug("debug")
	})
	assert.Equal(t, NullLogger{}, l.WithFields(IntField("n", 1)))
	assert.NoError(t, l.Close())
}
