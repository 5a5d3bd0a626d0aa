package main

import (
	"os"

	"github.com/IgnacioJofreGrra/deceroacien-core/internal/app"
)

// API routes only; static serving is always off
func main() {
	os.Exit(app.Main(os.Args[1:], true))
}
