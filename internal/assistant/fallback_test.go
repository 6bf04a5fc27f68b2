package assistant

import (
	"strings"
	"testing"
)

func TestFallbackResponse_Rules(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"What is the status in Ukraine?", "UKRAINE-RUSSIA CONFLICT"},
		{"RUSSIA news", "UKRAINE-RUSSIA CONFLICT"},
		{"Tell me about Taiwan", "CHINA-TAIWAN TENSIONS"},
		{"Brief me on Middle East developments", "MIDDLE EAST SITUATION"},
		{"israel", "MIDDLE EAST SITUATION"},
		{"Show cybersecurity threat status", "CYBERSECURITY INTELLIGENCE BRIEFING"},
		{"any major hacks?", "CYBERSECURITY INTELLIGENCE BRIEFING"},
		{"Economic sanctions impact analysis", "ECONOMIC INTELLIGENCE BRIEFING"},
		{"weather in Peru", "AI ANALYSIS"},
	}

	for _, tt := range tests {
		got := FallbackResponse(tt.message)
		if !strings.Contains(got, tt.want) {
			t.Errorf("FallbackResponse(%q): expected %q in response", tt.message, tt.want)
		}
	}
}

func TestFallbackResponse_FirstMatchWins(t *testing.T) {
	// Mentions both Russia and sanctions; the Ukraine-Russia rule comes first
	got := FallbackResponse("Russia sanctions")
	if !strings.Contains(got, "UKRAINE-RUSSIA") {
		t.Errorf("expected first rule to win, got %s", got)
	}
}

func TestFallbackResponse_Deterministic(t *testing.T) {
	for _, msg := range []string{"china", "hello world", "Cyber"} {
		if FallbackResponse(msg) != FallbackResponse(msg) {
			t.Errorf("FallbackResponse(%q) not deterministic", msg)
		}
	}
}

func TestFallbackResponse_GenericQuotesMessage(t *testing.T) {
	got := FallbackResponse("Arctic shipping")
	if !strings.Contains(got, `"Arctic shipping"`) {
		t.Errorf("expected message to be quoted, got %s", got)
	}
	if !strings.Contains(got, "COHERE_API_KEY or OPENAI_API_KEY") {
		t.Error("expected configuration hint")
	}
}
