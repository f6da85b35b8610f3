package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"docrag/cmd/docrag/commands"
	"docrag/internal/domain"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	commands.SetVersion(version)
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates typed domain failures (1) from unexpected ones (2).
func exitCode(err error) int {
	var perr *domain.DocumentProcessingError
	var verr *domain.VectorStoreError
	var rerr *domain.RAGError
	if errors.As(err, &perr) || errors.As(err, &verr) || errors.As(err, &rerr) {
		return 1
	}
	return 2
}
