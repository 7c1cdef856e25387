package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	m := NewMetadata("Café", "https://jobs.lever.co/acme/1")

	assert.Equal(t, "https://jobs.lever.co/acme/1", m.Source)
	assert.Equal(t, 4, m.Chars)
	assert.Equal(t, ContentHash("Café"), m.Hash)
	assert.Len(t, m.Hash, 64)

	_, err := time.Parse(time.RFC3339, m.Timestamp)
	assert.NoError(t, err)
}

func TestMetadata_ToJSON(t *testing.T) {
	data, err := NewMetadata("text", "").ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "source")
	assert.Equal(t, "982d9e3eb996f559e633f4d194def3761d909f5a3b647d1a851fead67c32c9d1", decoded["hash"])
}
