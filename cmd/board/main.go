package main

import (
	"github.com/joho/godotenv"
	"github.com/shinyyama/message-board/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
