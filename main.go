package main

import (
	"fmt"
	"os"

	"github.com/docshelf/docshelf/internal/cli"
	"github.com/joho/godotenv"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// A .env in the working directory may supply DOCSHELF_* settings.
	_ = godotenv.Load()

	if err := cli.Execute(version, commit, date); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
