package main

import (
	"os"

	"yanyu/backend/internal/app"
)

// @title           YanYu Cloud API
// @version         1.0
// @description     Streaming chat relay for a local Ollama server, model management and a local project store.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
