package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyler14/ios-simulator-skill/internal/domain"
)

func TestAuditElements(t *testing.T) {
	elements := []domain.Element{
		{Type: "Button", Label: "Sign In", Frame: domain.Frame{Width: 120, Height: 44}, Visible: true, Enabled: true},
		{Type: "Button", Frame: domain.Frame{Width: 60, Height: 60}, Visible: true, Enabled: true},
		{Type: "Button", Label: "Close", Frame: domain.Frame{Width: 20, Height: 20}, Visible: true, Enabled: true},
		{Type: "StaticText", Label: "Welcome", Frame: domain.Frame{Width: 10, Height: 10}, Visible: true, Enabled: true},
	}

	issues := auditElements(elements)
	require.Len(t, issues, 2)

	assert.Equal(t, "error", issues[0].Severity)
	assert.Equal(t, "missing-label", issues[0].Rule)

	assert.Equal(t, "warning", issues[1].Severity)
	assert.Equal(t, "small-tap-target", issues[1].Rule)
	assert.Contains(t, issues[1].Detail, "20x20")
}

func TestAuditElements_DuplicateLabels(t *testing.T) {
	elements := []domain.Element{
		{Type: "Button", Label: "Delete", Frame: domain.Frame{Width: 80, Height: 44}, Visible: true, Enabled: true},
		{Type: "Button", Label: "Delete", Frame: domain.Frame{Width: 80, Height: 44}, Visible: true, Enabled: true},
	}

	issues := auditElements(elements)
	require.Len(t, issues, 1, "a shared label is reported once")
	assert.Equal(t, "duplicate-label", issues[0].Rule)
	assert.Contains(t, issues[0].Detail, `2 interactive elements share the label "Delete"`)
}

func TestAuditElements_IgnoresHiddenAndStatic(t *testing.T) {
	elements := []domain.Element{
		{Type: "Button", Visible: false},
		{Type: "StaticText", Visible: true},
		{Type: "Image", Visible: true},
	}
	assert.Empty(t, auditElements(elements))
}
