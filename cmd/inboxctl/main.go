package main

import (
	"github.com/joho/godotenv"

	"github.com/inboxkit/inboxkit/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
