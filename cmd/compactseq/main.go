package main

import (
	"fmt"
	"os"
)

var (
	version = "dev"
)

// Entry point for the application. Every failure surfaces as a one-line
// message and a non-zero exit code; internal detail stays in the logs.
func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
