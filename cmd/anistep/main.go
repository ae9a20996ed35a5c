package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/molssi-seamm/anistep/pkg/style"
)

func init() {
	// Load .env if present; a missing file is fine
	_ = godotenv.Load()
}

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
