package main

import (
	"github.com/joho/godotenv"

	"fwbuild/internal/cli"
)

func main() {
	// Optional .env for local overrides (FWBUILD_* settings).
	_ = godotenv.Load()

	cli.Execute()
}
