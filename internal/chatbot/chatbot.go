// Package chatbot implements the rule-based question answering used by the
// /chatbot endpoint and the websocket chat. It keyword-matches messages
// against a fixed disease and intent vocabulary, with no ranking or learning.
package chatbot

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/riceguard/riceguard-go/internal/logging"
)

// Clarification messages returned when a question cannot be matched.
const (
	ClarifyDisease = "I can help with rice leaf diseases such as Blight, Brown Spot, False Smut, Leaf Smut, Rice Blast, Stem Rot and Tungro. Please mention a disease name in your question."
	clarifyIntent  = "What would you like to know about %s? You can ask about symptoms, treatment, prevention, or severity."
)

// disease is one entry of the ordered matching vocabulary.
type disease struct {
	keyword string // lower-case substring to match
	display string // title-cased name used in replies
}

// diseases are scanned in order; the first substring match wins.
var diseases = []disease{
	{"brown spot", "Brown Spot"},
	{"false smut", "False Smut"},
	{"leaf smut", "Leaf Smut"},
	{"rice blast", "Rice Blast"},
	{"stem rot", "Stem Rot"},
	{"blight", "Blight"},
	{"blast", "Rice Blast"},
	{"smut", "Leaf Smut"},
	{"tungro", "Tungro"},
	{"healthy", "Healthy"},
}

// intent groups several trigger keywords under one answer key.
type intent struct {
	key      string
	label    string
	keywords []string
}

// intents are scanned in order after a disease has matched.
var intents = []intent{
	{"symptoms", "symptoms", []string{"symptom", "sign", "look like", "identify", "spot it"}},
	{"treatment", "treatment", []string{"treat", "cure", "remedy", "medicine", "fungicide", "spray", "control"}},
	{"prevention", "prevention", []string{"prevent", "avoid", "protect", "stop", "reduce risk"}},
	{"severity", "severity", []string{"severity", "severe", "serious", "danger", "how bad"}},
}

// Engine answers free-text questions from the static knowledge base.
type Engine struct {
	logger *slog.Logger
}

// New returns a ready-to-use chatbot engine.
func New() *Engine {
	return &Engine{
		logger: logging.ForService("chatbot"),
	}
}

// Reply produces the answer for one user message.
//
// The message is lower-cased and trimmed, then matched in two stages:
// first against the disease vocabulary, then against the intent keyword
// groups. Both stages use ordered first-match substring scans. A missing
// disease or intent yields a clarification message instead of an answer.
func (e *Engine) Reply(message string) string {
	normalized := strings.ToLower(strings.TrimSpace(message))

	matched, ok := matchDisease(normalized)
	if !ok {
		e.logger.Debug("no disease matched", "message_len", len(message))
		return ClarifyDisease
	}

	in, ok := matchIntent(normalized)
	if !ok {
		return fmt.Sprintf(clarifyIntent, matched.display)
	}

	answers := lookupAnswers(matched.display, in.key)
	if len(answers) == 0 {
		return fmt.Sprintf(clarifyIntent, matched.display)
	}

	return fmt.Sprintf("For %s, %s: %s", matched.display, in.label, strings.Join(answers, ", "))
}

func matchDisease(message string) (disease, bool) {
	for _, d := range diseases {
		if strings.Contains(message, d.keyword) {
			return d, true
		}
	}
	return disease{}, false
}

func matchIntent(message string) (intent, bool) {
	for _, in := range intents {
		for _, keyword := range in.keywords {
			if strings.Contains(message, keyword) {
				return in, true
			}
		}
	}
	return intent{}, false
}

// lookupAnswers resolves the severity-keyed answer lists for a disease and
// intent, preferring the "High" variant when one exists.
func lookupAnswers(display, intentKey string) []string {
	byIntent, ok := knowledgeBase[display]
	if !ok {
		return nil
	}
	bySeverity, ok := byIntent[intentKey]
	if !ok || len(bySeverity) == 0 {
		return nil
	}
	if high, ok := bySeverity["High"]; ok {
		return high
	}
	for _, key := range severityKeyOrder {
		if answers, ok := bySeverity[key]; ok {
			return answers
		}
	}
	// Fall back to any remaining key so unexpected data never drops an answer.
	for _, answers := range bySeverity {
		return answers
	}
	return nil
}
