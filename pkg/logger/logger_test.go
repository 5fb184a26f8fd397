package logger

import (
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupParsesLevel(t *testing.T) {
	Setup("debug")
	assert.Equal(t, DebugLevel, log.Logger.GetLevel())
}

func TestSetupUnknownLevelDefaultsToInfo(t *testing.T) {
	Setup("verbose")
	assert.Equal(t, InfoLevel, log.Logger.GetLevel())
}
