package main

import (
	"github.com/joho/godotenv"
	"github.com/khrees2412/tradecv/cmd"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	cmd.Execute()
}
