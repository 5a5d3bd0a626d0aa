package main

import (
	"os"

	"github.com/IgnacioJofreGrra/deceroacien-core/internal/app"
)

// serves the frontend assets plus the API routes
func main() {
	os.Exit(app.Main(os.Args[1:], false))
}
