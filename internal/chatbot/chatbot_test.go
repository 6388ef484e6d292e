package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyMatchesDiseaseAndIntent(t *testing.T) {
	t.Parallel()

	engine := New()

	testCases := []struct {
		name       string
		message    string
		wantPrefix string
		wantPart   string
	}{
		{
			name:       "brown spot symptoms",
			message:    "What are the symptoms of brown spot",
			wantPrefix: "For Brown Spot",
			wantPart:   "Brown circular spots",
		},
		{
			name:       "rice blast treatment",
			message:    "how do I treat rice blast?",
			wantPrefix: "For Rice Blast, treatment:",
			wantPart:   "Spray Tricyclazole",
		},
		{
			name:       "tungro prevention",
			message:    "How can I prevent Tungro in my field",
			wantPrefix: "For Tungro, prevention:",
			wantPart:   "Vector control",
		},
		{
			name:       "blight severity",
			message:    "is blight serious",
			wantPrefix: "For Blight, severity:",
			wantPart:   "wet seasons",
		},
		{
			name:       "case and whitespace insensitive",
			message:    "  TELL ME THE SYMPTOMS OF LEAF SMUT  ",
			wantPrefix: "For Leaf Smut, symptoms:",
			wantPart:   "Black streaks on leaves",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := engine.Reply(tc.message)
			assert.True(t, strings.HasPrefix(got, tc.wantPrefix), "reply %q should start with %q", got, tc.wantPrefix)
			assert.Contains(t, got, tc.wantPart)
		})
	}
}

func TestReplyJoinsAnswersWithCommaSpace(t *testing.T) {
	t.Parallel()

	engine := New()
	got := engine.Reply("symptoms of brown spot")

	assert.Equal(t, "For Brown Spot, symptoms: Brown circular spots, Yellow halo around lesions, Reduced grain quality", got)
}

func TestReplyClarifiesWhenNoDiseaseMatches(t *testing.T) {
	t.Parallel()

	engine := New()

	// Intent keywords alone never produce an answer.
	for _, message := range []string{
		"what are the symptoms",
		"how do I treat my crop",
		"hello there",
		"",
	} {
		assert.Equal(t, ClarifyDisease, engine.Reply(message), "message %q", message)
	}
}

func TestReplyClarifiesIntentWhenOnlyDiseaseMatches(t *testing.T) {
	t.Parallel()

	engine := New()
	got := engine.Reply("tell me about rice blast")

	assert.Contains(t, got, "What would you like to know about Rice Blast?")
	assert.Contains(t, got, "symptoms, treatment, prevention, or severity")
}

func TestReplyPrefersHighSeverityAnswers(t *testing.T) {
	t.Parallel()

	engine := New()
	got := engine.Reply("how should I treat brown spot")

	// The "High" list starts with Mancozeb; the "Low" variant does not.
	assert.Contains(t, got, "Apply Mancozeb or Carbendazim")
}

func TestReplyFallsBackToFirstAvailableSeverity(t *testing.T) {
	t.Parallel()

	engine := New()
	got := engine.Reply("how severe is stem rot")

	assert.Contains(t, got, "lodging")
}

func TestReplyHealthyHasNoTreatment(t *testing.T) {
	t.Parallel()

	engine := New()
	got := engine.Reply("how do I treat a healthy plant")

	assert.Contains(t, got, "What would you like to know about Healthy?")
}

func TestDiseaseMatchOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	engine := New()

	// "brown spot" precedes the bare "blight" keyword in the scan order.
	got := engine.Reply("symptoms of brown spot and blight")
	assert.True(t, strings.HasPrefix(got, "For Brown Spot"), "got %q", got)
}
