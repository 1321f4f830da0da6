package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"sync"
	"time"

	"voicedesk/agents"
	"voicedesk/gemini"
	"voicedesk/messages"

	"github.com/gorilla/websocket"
	"google.golang.org/genai"
)

const (
	writeBufferSize = 256
	writeTimeout    = 10 * time.Second
)

// ClientSession represents a single caller's connection. Audio flows from the
// caller's socket to the agent's Gemini Live session and back; tool calls from
// the model are answered out of the agent's registry.
type ClientSession struct {
	ID           string
	IsTwilio     bool   // Whether this is a Twilio voice call session
	StreamSid    string // Twilio stream SID (set on "start" event)
	ClientConn   *websocket.Conn
	Gemini       *gemini.Proxy
	Agent        *agents.Agent
	AudioBuffer  *AudioBuffer // Buffer for incoming audio chunks
	CreatedAt    time.Time
	LastActivity time.Time

	// OnToolInvoked is called after each dispatched tool call (set by the
	// manager for bookkeeping). May be nil.
	OnToolInvoked func(toolName string)

	// Use channels for non-blocking writes
	writeChan chan any

	mu        sync.RWMutex
	closed    bool
	CloseChan chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewClientSession creates a session with a Gemini Live connection configured
// for the given agent variant
func NewClientSession(ctx context.Context, id string, clientConn *websocket.Conn, geminiKey string, agent *agents.Agent, voiceName string, maxBufferSize int) (*ClientSession, error) {
	proxy, err := gemini.NewProxy(ctx, geminiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini proxy: %w", err)
	}

	sc := gemini.SessionConfig{
		SystemPrompt: agent.Instructions,
		Tools:        agent.Tools.Declarations(),
		VoiceName:    voiceName,
	}
	if err := proxy.Setup(ctx, sc); err != nil {
		proxy.Close()
		return nil, fmt.Errorf("failed to setup Gemini session: %w", err)
	}

	sessionCtx, cancel := context.WithCancel(context.Background())

	// Configure WebSocket for better performance
	clientConn.SetReadLimit(512 * 1024) // 512KB max message
	clientConn.EnableWriteCompression(true)
	clientConn.SetCompressionLevel(6)

	session := &ClientSession{
		ID:           id,
		ClientConn:   clientConn,
		Gemini:       proxy,
		Agent:        agent,
		AudioBuffer:  NewAudioBuffer(maxBufferSize),
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
		writeChan:    make(chan any, writeBufferSize),
		CloseChan:    make(chan struct{}),
		ctx:          sessionCtx,
		cancel:       cancel,
	}

	return session, nil
}

// NewTwilioClientSession creates a session for Twilio voice calls
func NewTwilioClientSession(ctx context.Context, id string, clientConn *websocket.Conn, geminiKey string, agent *agents.Agent, voiceName string, maxBufferSize int) (*ClientSession, error) {
	session, err := NewClientSession(ctx, id, clientConn, geminiKey, agent, voiceName, maxBufferSize)
	if err != nil {
		return nil, err
	}
	session.IsTwilio = true

	// Twilio doesn't support WebSocket compression
	clientConn.EnableWriteCompression(false)

	return session, nil
}

// Start begins the bidirectional message handling for standard WebSocket clients
func (cs *ClientSession) Start() {
	go cs.writePump()
	cs.setupGeminiCallbacks()
	cs.Gemini.StartReceiving(cs.ctx)
	cs.queueMessage(messages.NewStatusMessage(cs.ID, "connected", "Session established"))
	go cs.handleClientMessages()
}

// StartTwilio begins the bidirectional message handling for Twilio voice calls
func (cs *ClientSession) StartTwilio() {
	go cs.writePump()
	cs.setupTwilioGeminiCallbacks()
	cs.Gemini.StartReceiving(cs.ctx)
	go cs.handleTwilioMessages()
}

// setupGeminiCallbacks configures callbacks for standard WebSocket clients
func (cs *ClientSession) setupGeminiCallbacks() {
	cs.Gemini.OnAudioRaw = func(base64Data string) {
		cs.queueMessage(messages.NewAudioMessage(cs.ID, base64Data))
	}

	cs.Gemini.OnText = func(text string) {
		cs.queueMessage(messages.NewTextMessage(cs.ID, text))
	}

	cs.Gemini.OnComplete = func() {
		cs.queueMessage(messages.NewStatusMessage(cs.ID, "turn_complete", ""))
	}

	cs.setupGeminiErrorCallback()

	cs.Gemini.OnToolCall = func(functionCalls []*genai.FunctionCall) {
		cs.handleToolCalls(functionCalls)
	}
}

// setupTwilioGeminiCallbacks configures callbacks for Twilio voice call sessions
func (cs *ClientSession) setupTwilioGeminiCallbacks() {
	cs.Gemini.OnAudioRaw = func(base64Data string) {
		cs.mu.RLock()
		streamSid := cs.StreamSid
		cs.mu.RUnlock()

		if streamSid == "" {
			log.Printf("⚠️ [%s] Received audio from Gemini but no StreamSid set yet", cs.ID[:8])
			return
		}

		// Decode Gemini's PCM audio (24kHz, 16-bit, little-endian)
		pcmData, err := base64.StdEncoding.DecodeString(base64Data)
		if err != nil {
			log.Printf("❌ [%s] Failed to decode base64 audio: %v", cs.ID[:8], err)
			return
		}

		// Send mu-law audio back to Twilio as base64
		encoded := base64.StdEncoding.EncodeToString(PCMDownsampleToMuLaw(pcmData))
		cs.queueMessage(messages.NewTwilioMedia(streamSid, encoded))
	}

	cs.Gemini.OnText = func(text string) {
		log.Printf("📝 [%s] Gemini text (Twilio session): %s", cs.ID[:8], text)
	}

	cs.Gemini.OnComplete = func() {
		log.Printf("✅ [%s] Gemini turn complete (Twilio session)", cs.ID[:8])
	}

	cs.setupGeminiErrorCallback()

	cs.Gemini.OnToolCall = func(functionCalls []*genai.FunctionCall) {
		cs.handleToolCalls(functionCalls)
	}
}

// setupGeminiErrorCallback sets up error handling common to both session types
func (cs *ClientSession) setupGeminiErrorCallback() {
	cs.Gemini.OnError = func(err error) {
		log.Printf("❌ [%s] Gemini error: %v", cs.ID[:8], err)
		if !cs.IsTwilio {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeGeminiError, err.Error()))
		}
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) ||
			websocket.IsUnexpectedCloseError(err) {
			log.Printf("🔌 [%s] Closing session due to Gemini connection error", cs.ID[:8])
			cs.Close()
		}
	}
}

// writePump handles all outgoing messages in a single goroutine
func (cs *ClientSession) writePump() {
	defer func() {
		// Send close message before exiting
		cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
		cs.ClientConn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
	}()

	for {
		select {
		case <-cs.CloseChan:
			return
		case msg, ok := <-cs.writeChan:
			if !ok {
				// Channel closed, exit gracefully
				return
			}

			if err := cs.writeFrame(msg); err != nil {
				return
			}

			// Drain whatever queued up while we were writing
			n := len(cs.writeChan)
			for i := 0; i < n; i++ {
				select {
				case msg, ok := <-cs.writeChan:
					if !ok {
						return
					}
					if err := cs.writeFrame(msg); err != nil {
						return
					}
				default:
					// No more messages, continue outer loop
				}
			}
		}
	}
}

func (cs *ClientSession) writeFrame(msg any) error {
	data, err := messages.Encode(msg)
	if err != nil {
		log.Printf("❌ [%s] Failed to encode message: %v", cs.ID[:8], err)
		return nil
	}
	cs.ClientConn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return cs.ClientConn.WriteMessage(websocket.TextMessage, data)
}

// queueMessage adds a message to the write queue (non-blocking)
func (cs *ClientSession) queueMessage(msg any) {
	cs.mu.RLock()
	closed := cs.closed
	cs.mu.RUnlock()
	if closed {
		return
	}
	select {
	case cs.writeChan <- msg:
		cs.mu.Lock()
		cs.LastActivity = time.Now()
		cs.mu.Unlock()
	default:
		// Queue full, drop message (shouldn't happen with proper sizing)
	}
}

// Close terminates the session and cleans up resources
func (cs *ClientSession) Close() error {
	cs.mu.Lock()
	if cs.closed {
		cs.mu.Unlock()
		return nil
	}
	cs.closed = true
	cs.mu.Unlock()

	cs.cancel()

	// Close the write channel first to stop writePump
	close(cs.writeChan)

	// Signal close (for other goroutines waiting on this)
	close(cs.CloseChan)

	if cs.AudioBuffer != nil {
		cs.AudioBuffer.Clear()
	}

	if cs.Gemini != nil {
		cs.Gemini.Close()
	}

	// Close client connection - don't write close message as writePump is stopped
	if cs.ClientConn != nil {
		cs.ClientConn.Close()
	}

	return nil
}

// handleTwilioMessages processes Twilio WebSocket protocol messages.
// Twilio sends: connected, start, media, stop events.
// Audio is streamed directly to Gemini (no buffering) — Gemini handles VAD.
func (cs *ClientSession) handleTwilioMessages() {
	defer cs.Close()
	for {
		select {
		case <-cs.CloseChan:
			return
		default:
			_, message, err := cs.ClientConn.ReadMessage()
			if err != nil {
				if !cs.IsClosed() {
					log.Printf("❌ [%s] Twilio WebSocket read error: %v", cs.ID[:8], err)
				}
				return
			}

			cs.mu.Lock()
			cs.LastActivity = time.Now()
			cs.mu.Unlock()

			frame, err := messages.ParseTwilio(message)
			if err != nil {
				log.Printf("⚠️ [%s] Failed to parse Twilio message: %v", cs.ID[:8], err)
				continue
			}

			switch frame.Event {
			case "connected":
				log.Printf("📞 [%s] Twilio stream connected", cs.ID[:8])

			case "start":
				if frame.Start == nil || frame.Start.StreamSid == "" {
					log.Printf("⚠️ [%s] Twilio 'start' event missing streamSid", cs.ID[:8])
					continue
				}
				cs.mu.Lock()
				cs.StreamSid = frame.Start.StreamSid
				cs.mu.Unlock()
				log.Printf("📞 [%s] Twilio stream started, StreamSid: %s", cs.ID[:8], frame.Start.StreamSid)

			case "media":
				if frame.Media == nil {
					continue
				}

				// Decode base64 mu-law audio from Twilio
				muLawData, err := base64.StdEncoding.DecodeString(frame.Media.Payload)
				if err != nil {
					log.Printf("⚠️ [%s] Failed to decode Twilio audio: %v", cs.ID[:8], err)
					continue
				}

				// Convert mu-law (8kHz) -> PCM (16kHz) and stream straight to Gemini
				if err := cs.Gemini.SendAudio(MuLawToPCMUpsample(muLawData)); err != nil {
					log.Printf("❌ [%s] Failed to send audio to Gemini: %v", cs.ID[:8], err)
				}

			case "stop":
				log.Printf("📞 [%s] Twilio stream stopped", cs.ID[:8])
				return

			case "mark":
				// Mark events are informational, ignore

			default:
				log.Printf("⚠️ [%s] Unknown Twilio event: %s", cs.ID[:8], frame.Event)
			}
		}
	}
}

func (cs *ClientSession) handleClientMessages() {
	defer cs.Close()

	for {
		select {
		case <-cs.CloseChan:
			return
		default:
			messageType, message, err := cs.ClientConn.ReadMessage()
			if err != nil {
				return
			}

			cs.mu.Lock()
			cs.LastActivity = time.Now()
			cs.mu.Unlock()

			// Handle binary messages (raw PCM audio) - buffer instead of sending immediately
			if messageType == websocket.BinaryMessage {
				log.Printf("🎤 [%s] Buffering binary audio: %d bytes from client", cs.ID[:8], len(message))
				if err := cs.AudioBuffer.Append(message); err != nil {
					cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeBufferFull,
						fmt.Sprintf("Audio buffer full (max %d bytes)", cs.AudioBuffer.MaxSize())))
				}
				continue
			}

			// Handle text messages (JSON)
			clientMsg, err := messages.ParseClient(message)
			if err != nil {
				cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid message format"))
				continue
			}

			cs.processClientMessage(clientMsg)
		}
	}
}

func (cs *ClientSession) processClientMessage(msg *messages.ClientMessage) {
	switch msg.Type {
	case "audio":
		var payload messages.AudioPayload
		if err := msg.DecodePayload(&payload); err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid audio payload"))
			return
		}
		// Decode base64 and buffer the audio
		audioBytes, err := base64.StdEncoding.DecodeString(payload.Data)
		if err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid base64 audio data"))
			return
		}
		log.Printf("🎤 [%s] Buffering JSON audio: %d bytes from client", cs.ID[:8], len(audioBytes))
		if err := cs.AudioBuffer.Append(audioBytes); err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeBufferFull,
				fmt.Sprintf("Audio buffer full (max %d bytes)", cs.AudioBuffer.MaxSize())))
		}

	case "audio_binary":
		var payload messages.AudioPayload
		if err := msg.DecodePayload(&payload); err != nil {
			return
		}
		audioBytes, err := base64.StdEncoding.DecodeString(payload.Data)
		if err != nil {
			return
		}
		cs.AudioBuffer.Append(audioBytes)

	case "control":
		var payload messages.ControlPayload
		if err := msg.DecodePayload(&payload); err != nil {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Invalid control payload"))
			return
		}
		cs.handleControlMessage(&payload)

	default:
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Unknown message type: "+msg.Type))
	}
}

func (cs *ClientSession) handleControlMessage(payload *messages.ControlPayload) {
	switch payload.Action {
	case "ping":
		cs.queueMessage(messages.NewStatusMessage(cs.ID, "pong", ""))
	case "end_turn":
		// Flush buffered audio and send to Gemini as a batch
		cs.handleEndTurn()
	default:
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeInvalidMessage, "Unknown control action: "+payload.Action))
	}
}

// handleEndTurn flushes the audio buffer and sends to Gemini
func (cs *ClientSession) handleEndTurn() {
	if cs.AudioBuffer.IsEmpty() {
		log.Printf("⚠️ [%s] end_turn received but buffer is empty, ignoring", cs.ID[:8])
		return
	}
	// Get chunk count before flushing (Flush clears the buffer)
	chunkCount := cs.AudioBuffer.ChunkCount()

	audioData := cs.AudioBuffer.Flush()
	log.Printf("📤 [%s] Sending batch audio to Gemini: %d bytes (%d chunks)", cs.ID[:8], len(audioData), chunkCount)

	if err := cs.Gemini.SendAudioBatch(audioData); err != nil {
		log.Printf("❌ [%s] Failed to send audio to Gemini: %v", cs.ID[:8], err)
		cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeGeminiError, err.Error()))
	}
}

// IsClosed returns whether the session is closed
func (cs *ClientSession) IsClosed() bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.closed
}

// handleToolCalls answers the model's function calls from the agent's tool
// registry and sends the responses back in one batch
func (cs *ClientSession) handleToolCalls(functionCalls []*genai.FunctionCall) {
	responses := make([]*genai.FunctionResponse, 0, len(functionCalls))

	for _, fc := range functionCalls {
		responses = append(responses, cs.Agent.Tools.Dispatch(cs.ctx, fc))
		if cs.OnToolInvoked != nil {
			cs.OnToolInvoked(fc.Name)
		}
	}

	if err := cs.Gemini.SendToolResponse(responses); err != nil {
		log.Printf("❌ [%s] Failed to send tool response: %v", cs.ID[:8], err)
		if !cs.IsTwilio {
			cs.queueMessage(messages.NewErrorMessage(cs.ID, messages.ErrCodeGeminiError, err.Error()))
		}
	}
}
