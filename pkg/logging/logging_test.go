package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupWriterCapturesOutput(t *testing.T) {
	var buf bytes.Buffer
	SetupWriter(&buf)

	logger := GetLogger("test-component")
	logger.Warn().Msg("something happened")

	out := buf.String()
	assert.Contains(t, out, `"component":"test-component"`)
	assert.Contains(t, out, `"message":"something happened"`)
}

func TestSetupVerbosityLevels(t *testing.T) {
	var buf bytes.Buffer
	Setup(0)
	SetupWriter(&buf)

	quiet := GetLogger("quiet")
	quiet.Debug().Msg("not at this level")
	assert.Empty(t, buf.String())

	Setup(2)
	SetupWriter(&buf)
	chatty := GetLogger("chatty")
	chatty.Debug().Msg("visible now")
	assert.Contains(t, buf.String(), "visible now")
}
