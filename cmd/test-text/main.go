package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"voicedesk/agents"
	"voicedesk/gemini"

	"google.golang.org/genai"
)

// Text-mode smoke test: talks to the Live API directly with a chosen agent,
// dispatching any tool calls through the agent's registry. Useful for checking
// prompts and tool wiring without an audio client.
func main() {
	agentName := flag.String("agent", "saudia", "Agent variant to load (saudia, lufthansa, pizza)")
	message := flag.String("message", "Hello! Say hi back in one sentence.", "Message to send")
	flag.Parse()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY not set")
	}

	agent, err := agents.ForName(*agentName)
	if err != nil {
		log.Fatalf("Failed to resolve agent: %v", err)
	}
	log.Printf("🤖 Loaded agent %q with %d tool(s)", agent.Name, agent.Tools.Len())

	ctx := context.Background()

	proxy, err := gemini.NewProxy(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to create proxy: %v", err)
	}
	defer proxy.Close()

	// Set up callbacks
	proxy.OnAudio = func(data []byte) {
		log.Printf("🔊 Received audio: %d bytes", len(data))
	}
	proxy.OnText = func(text string) {
		log.Printf("💬 Received text: %s", text)
	}
	proxy.OnComplete = func() {
		log.Println("✅ Turn complete")
	}
	proxy.OnError = func(err error) {
		log.Printf("❌ Error: %v", err)
	}
	proxy.OnToolCall = func(functionCalls []*genai.FunctionCall) {
		responses := make([]*genai.FunctionResponse, 0, len(functionCalls))
		for _, fc := range functionCalls {
			responses = append(responses, agent.Tools.Dispatch(ctx, fc))
		}
		if err := proxy.SendToolResponse(responses); err != nil {
			log.Printf("❌ Failed to send tool responses: %v", err)
		}
	}

	err = proxy.Setup(ctx, gemini.SessionConfig{
		SystemPrompt: agent.Instructions,
		Tools:        agent.Tools.Declarations(),
	})
	if err != nil {
		log.Fatalf("Failed to setup: %v", err)
	}

	// Start receiving
	proxy.StartReceiving(ctx)

	if err := proxy.SendText(*message); err != nil {
		log.Fatalf("Failed to send text: %v", err)
	}

	// Wait for response
	log.Println("Waiting for response...")
	time.Sleep(10 * time.Second)
	log.Println("Done")
}
