package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voicedesk/agents"
	"voicedesk/config"
	"voicedesk/server"
	"voicedesk/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Resolve the agent variant this worker hosts
	agent, err := agents.ForName(cfg.AgentName)
	if err != nil {
		log.Fatalf("Failed to resolve agent: %v", err)
	}
	log.Printf("🤖 Hosting agent %q with %d tool(s)", agent.Name, agent.Tools.Len())

	// Create session manager
	sessionManager, err := session.NewManager(cfg, agent)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	// Start cleanup routine
	ctx, cancel := context.WithCancel(context.Background())
	go sessionManager.StartCleanupRoutine(ctx)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	switch cfg.ServerType {
	case "websocket":
		srv := server.NewServer(cfg, sessionManager)

		go func() {
			<-sigChan
			log.Println("\nReceived shutdown signal...")
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server shutdown error: %v", err)
			}
		}()

		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("Server error: %v", err)
		}

	case "twilio":
		twilioSrv := server.NewTwilioServer(cfg, sessionManager)

		go func() {
			<-sigChan
			log.Println("\nReceived shutdown signal...")
			cancel()
			sessionManager.Shutdown()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := twilioSrv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Twilio server shutdown error: %v", err)
			}
		}()

		if err := twilioSrv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("Twilio server error: %v", err)
		}

	case "both":
		srv := server.NewServer(cfg, sessionManager)
		twilioSrv := server.NewTwilioServer(cfg, sessionManager)

		go func() {
			<-sigChan
			log.Println("\nReceived shutdown signal...")
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("WebSocket server shutdown error: %v", err)
			}
			if err := twilioSrv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Twilio server shutdown error: %v", err)
			}
		}()

		// Start Twilio server in background
		go func() {
			if err := twilioSrv.Start(); err != nil && err.Error() != "http: Server closed" {
				log.Fatalf("Twilio server error: %v", err)
			}
		}()

		// Start WebSocket server (blocks)
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("WebSocket server error: %v", err)
		}

	default:
		log.Fatalf("Unknown SERVER_TYPE: %s", cfg.ServerType)
	}

	log.Println("Server stopped")
}
