// Package main is the production entry point for Super Quiz Musical.
//
// Build:
//
//	go build -o build/superquiz ./cmd
//
// Run:
//
//	./build/superquiz
//
// Configuration comes from the environment (optionally a .env file); see
// app.LoadConfig for the recognized variables.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tejashwikalptaru/superquiz/internal/app"
)

func main() {
	config := app.LoadConfig()

	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		fmt.Println("\nShutting down...")
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
		fmt.Println("Shutdown complete")
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("Application error: %v", err)
		}
	case sig := <-stop:
		log.Printf("Received %s", sig)
	}
}
