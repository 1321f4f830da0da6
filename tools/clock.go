package tools

import (
	"context"
	"log"
	"time"

	"google.golang.org/genai"
)

// CurrentTime returns the current UTC date and time in RFC 3339 form.
// The agents call this first to anchor relative dates ("tomorrow", "next week").
func CurrentTime() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func CurrentTimeDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name: "current_time",
		Description: "Returns the current date and time. " +
			"Always call this at the beginning of the conversation to determine the date context.",
	}
}

func CurrentTimeHandler(_ context.Context, _ map[string]any) map[string]any {
	now := CurrentTime()
	log.Printf("🕐 Current UTC time is %s", now)
	return map[string]any{"current_time": now}
}
