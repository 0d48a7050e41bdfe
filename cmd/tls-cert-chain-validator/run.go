// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/cli"
	"github.com/H0llyW00dzZ/tls-cert-chain-validator/src/logger"
	verpkg "github.com/H0llyW00dzZ/tls-cert-chain-validator/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	// Create CLI logger
	log := logger.NewCLILogger()

	// Set up signal handling using signal.NotifyContext for cleaner cancellation
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Channel to signal completion
	done := make(chan error, 1)

	// Run the CLI in a separate goroutine
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	// Wait for either completion or context cancellation
	select {
	case err := <-done:
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		// Give the CLI a moment to clean up (the serve command stops its server)
		select {
		case err := <-done:
			if err == nil {
				return
			}
		case <-time.After(10 * time.Second):
		}
		log.Println("Operation cancelled by signal. Exiting...")
		os.Exit(130) // Standard exit code for SIGINT
	}
}
