package chatbot

import (
	"strings"
	"testing"

	"eduPulse/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildResponse_ProgressTemplate(t *testing.T) {
	resp := BuildResponse(domain.Context{
		Intent:  domain.IntentResult{Intent: domain.IntentQuestionProgress, Score: 10},
		Urgency: domain.UrgencyNormal,
	})

	assert.Equal(t, ResponseText, resp.Type)
	assert.Equal(t, true, resp.Data["show_progress"])
	assert.Contains(t, resp.Actions, "Voir ma progression")
	assert.InDelta(t, 1.0, resp.Confidence, 1e-9)
}

func TestBuildResponse_UrgencyPrefixesAndEscalates(t *testing.T) {
	resp := BuildResponse(domain.Context{
		Intent:  domain.IntentResult{Intent: domain.IntentTechnicalIssue, Score: 20},
		Urgency: domain.UrgencyHigh,
	})

	assert.Equal(t, ResponsePriority, resp.Type)
	assert.True(t, strings.HasPrefix(resp.Text, "Je comprends que c'est urgent"))
	assert.InDelta(t, 2.0, resp.Confidence, 1e-9)
}

func TestBuildResponse_UnknownIntentFallsBack(t *testing.T) {
	resp := BuildResponse(domain.Context{
		Intent:  domain.IntentResult{Intent: domain.IntentDefault, Score: 0},
		Urgency: domain.UrgencyNormal,
	})

	assert.Equal(t, ResponseText, resp.Type)
	assert.Empty(t, resp.Actions)
	assert.Empty(t, resp.Data)
	assert.Zero(t, resp.Confidence)
}
