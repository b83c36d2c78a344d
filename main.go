package main

import (
	"github.com/joho/godotenv"

	"github.com/seceng-tools/access-review/cmd"
)

// main is the entry point for the access-review CLI.
func main() {
	// Load ambient credentials from a local .env if one exists; absence is fine.
	_ = godotenv.Load()

	cmd.Execute()
}
