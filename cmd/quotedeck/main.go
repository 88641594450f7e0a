// Package main is the QuoteDeck CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/auth"
	"github.com/quotedeck/quotedeck/internal/config"
	"github.com/quotedeck/quotedeck/internal/export"
	"github.com/quotedeck/quotedeck/internal/quote"
	"github.com/quotedeck/quotedeck/internal/server"
	"github.com/quotedeck/quotedeck/internal/store"
	"github.com/quotedeck/quotedeck/internal/transcribe"
	"github.com/quotedeck/quotedeck/internal/transcript"
	"github.com/quotedeck/quotedeck/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/quotedeck/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if neither
// exists, built-in defaults are used so the mock server runs with no setup.
// Returns the config and the path that was actually loaded ("" for defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("quotedeck version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (per-request logs, transcription events)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.String("transcription_mode", cfg.Transcription.Mode),
	)

	st := store.New()
	resolver := auth.NewResolver(st, logger)
	transcripts := transcript.NewService(st, logger)
	quotes := quote.NewService(st, transcripts, logger)
	exports := export.NewService(st, logger)
	simulator := transcribe.NewSimulator(cfg.Transcription, st, transcripts, logger)

	srv := server.NewServer(st, resolver, transcripts, quotes, exports, simulator, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// statusResponse is the shape of GET /api/status.
type statusResponse struct {
	Service    string         `json:"service"`
	ServerTime string         `json:"server_time"`
	Counts     map[string]int `json:"counts"`
	Notes      []string       `json:"notes,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	status, err := statusViaHTTP(*serverURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("service:      %s\n", status.Service)
		fmt.Printf("server_time:  %s\n", status.ServerTime)
		fmt.Println()
		fmt.Println("# resource counts")
		for _, k := range []string{"users", "assets", "transcripts", "quotes", "exports"} {
			fmt.Printf("%-12s  %d\n", k+":", status.Counts[k])
		}
		for _, n := range status.Notes {
			fmt.Printf("\n%s\n", n)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

func printUsage() {
	fmt.Println(`quotedeck - Mock media-to-quotes content pipeline backend

Usage:
  quotedeck server [flags]    Start the HTTP server
  quotedeck status [flags]    Show service status and resource counts
  quotedeck version           Show version
  quotedeck help              Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/quotedeck/config.yaml)
  --debug            Enable debug logging (per-request logs, transcription events)

Status Flags:
  --server string    Server URL (default: http://localhost:8080)
  --output string    Output format: text or json (default: text)

Examples:
  quotedeck server
  quotedeck server --debug
  quotedeck status
  quotedeck status --output json`)
}
