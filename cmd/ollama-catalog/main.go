package main

import (
	"ollama-catalog/cmd/ollama-catalog/commands"
	"ollama-catalog/internal/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
