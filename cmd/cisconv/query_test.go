// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cisconv/internal/store"
	"github.com/pdiddy/cisconv/pkg/types"
)

func sampleResults() []store.Result {
	return []store.Result{
		{
			Recommendation: types.Recommendation{
				Number:     "1.1.1",
				Title:      "Ensure cramfs kernel module is not available",
				Assessment: types.AssessmentAutomated,
			},
			Document: "CIS_Debian_Linux_12",
			Category: "Initial Setup",
			Ordinal:  1,
		},
	}
}

func TestFormatQueryOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatQueryOutput(&buf, sampleResults(), false))

	out := buf.String()
	assert.Contains(t, out, "Number")
	assert.Contains(t, out, "1.1.1")
	assert.Contains(t, out, "Automated")
	assert.Contains(t, out, "CIS_Debian_Linux_12")
	assert.Contains(t, out, "1 results")
}

func TestFormatQueryOutput_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatQueryOutput(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestFormatQueryOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatQueryOutput(&buf, sampleResults(), true))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "1.1.1", decoded[0]["number"])
	assert.Equal(t, "Initial Setup", decoded[0]["category"])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
