package tools

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// Handler executes a tool call with the raw argument map sent by the model and
// returns the response payload. Handlers are total: every call produces a
// payload, never an error.
type Handler func(ctx context.Context, args map[string]any) map[string]any

type entry struct {
	decl    *genai.FunctionDeclaration
	handler Handler
}

// Registry maps tool names to their function declarations and handlers.
// The model picks tools by name/description; dispatch happens here.
type Registry struct {
	order   []string
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool. Registering the same name twice replaces the handler
// but keeps the original position.
func (r *Registry) Register(decl *genai.FunctionDeclaration, h Handler) {
	if _, exists := r.entries[decl.Name]; !exists {
		r.order = append(r.order, decl.Name)
	}
	r.entries[decl.Name] = entry{decl: decl, handler: h}
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Declarations builds the tool list for the Live session config.
// Returns nil when the registry is empty (agents without tools).
func (r *Registry) Declarations() []*genai.Tool {
	if len(r.order) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, 0, len(r.order))
	for _, name := range r.order {
		decls = append(decls, r.entries[name].decl)
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// Dispatch runs the handler for a function call and wraps the payload in a
// FunctionResponse. Unknown names get an error payload instead of failing the
// turn, so the model can recover in conversation.
func (r *Registry) Dispatch(ctx context.Context, fc *genai.FunctionCall) *genai.FunctionResponse {
	e, ok := r.entries[fc.Name]
	if !ok {
		log.Printf("⚠️ Unknown function called: %s", fc.Name)
		return &genai.FunctionResponse{
			ID:       fc.ID,
			Name:     fc.Name,
			Response: map[string]any{"error": fmt.Sprintf("Unknown function: %s", fc.Name)},
		}
	}

	log.Printf("🔧 Function call: %s (id: %s)", fc.Name, fc.ID)
	payload := e.handler(ctx, fc.Args)

	return &genai.FunctionResponse{
		ID:       fc.ID,
		Name:     fc.Name,
		Response: payload,
	}
}
