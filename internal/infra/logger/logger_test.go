package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTo_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewTo(&buf, "prod")
	log.Debug("hidden")
	log.Info("quote priced", "template_id", 7)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "quote priced", rec["msg"])
	assert.Equal(t, service, rec["service"])
	assert.Equal(t, "prod", rec["env"])
	assert.EqualValues(t, 7, rec["template_id"])

	buf.Reset()
	NewTo(&buf, "dev").Debug("visible")
	assert.Contains(t, buf.String(), `"visible"`)

	buf.Reset()
	NewTo(&buf, "test").Error("dropped")
	assert.Empty(t, buf.String())
}
