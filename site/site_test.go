package site

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Principal Engineer", "principal-engineer"},
		{"  Senior   Principal  Engineer  ", "senior-principal-engineer"},
		{"Signal / Blonde Digital", "signal-blonde-digital"},
		{"Café Crème", "cafe-creme"},
		{"Ångström", "angstrom"},
		{"2024 Roadmap", "roadmap"},
		{"--Lead--Dev--", "lead-dev"},
		{"!!!", ""},
		{"", ""},
		{"123", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeID(tt.in))
		})
	}
}

func TestJobIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, j := range EmploymentHistory {
		id := j.ID()
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestEmploymentHistoryOrder(t *testing.T) {
	require.Len(t, EmploymentHistory, 6)
	assert.Equal(t, "Dare", EmploymentHistory[0].Company)
	assert.Equal(t, "Line Digital", EmploymentHistory[len(EmploymentHistory)-1].Company)
	for _, j := range EmploymentHistory {
		assert.True(t, j.HasDates(), j.Company)
	}
}

func TestRenderShell(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, DefaultPage()))
	html := buf.String()

	assert.Contains(t, html, `data-variant="hero"`)
	assert.Contains(t, html, `data-variant="contact"`)
	assert.Contains(t, html, `name="form-name" value="contact"`)
	assert.Contains(t, html, `name="bot-field"`)
	assert.Contains(t, html, `id="principal-engineer-trustpilot"`)
	assert.Contains(t, html, "Wood Mackenzie")
	assert.Equal(t, len(EmploymentHistory), strings.Count(html, `class="job"`))
	assert.NotContains(t, html, "Thanks! I'll be in touch.")
}

func TestRenderShellStatus(t *testing.T) {
	tests := []struct {
		status   string
		contains string
		absent   string
	}{
		{"success", "Thanks! I'll be in touch.", "<form"},
		{"error", "Something went wrong", "disabled"},
		{"submitting", "disabled", "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			p := DefaultPage()
			p.Status = tt.status
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, p))
			assert.Contains(t, buf.String(), tt.contains)
			assert.NotContains(t, buf.String(), tt.absent)
		})
	}
}
