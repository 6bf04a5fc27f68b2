package llm

import "fmt"

// DefaultContext is used when the caller gives neither a context nor a country
const DefaultContext = "General geopolitical analysis"

// CountryContext focuses the analysis on one country
func CountryContext(country string) string {
	return fmt.Sprintf("Focus specifically on news and events related to %s.", country)
}

// SystemPrompt builds the analyst persona used by completion-style providers
func SystemPrompt(context string) string {
	if context == "" {
		context = DefaultContext
	}

	return fmt.Sprintf(`You are a geopolitical intelligence analyst AI assistant. Your role is to:
1. Provide factual, objective analysis of global events
2. Focus on intelligence, security, and political developments
3. Use professional, analytical tone
4. Cite when information is based on open sources
5. Avoid speculation and clearly mark assessments vs facts

Context: %s

Respond with structured intelligence briefings when appropriate.`, context)
}

// ChatSystemPrompt is the shorter persona for chat-style providers that take a separate system message
func ChatSystemPrompt(context string) string {
	if context == "" {
		context = DefaultContext
	}

	return fmt.Sprintf(`You are a geopolitical intelligence analyst AI assistant. Provide factual, objective analysis of global events with focus on intelligence, security, and political developments. Use professional, analytical tone and structure responses as intelligence briefings when appropriate.

Context: %s`, context)
}

// completionPrompt frames a message for providers that take a single prompt string
func completionPrompt(context, message string) string {
	return fmt.Sprintf("%s\n\nUser: %s\n\nAssistant:", SystemPrompt(context), message)
}
