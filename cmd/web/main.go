// Command web runs the monthly sales dashboard API server.
package main

import (
	"log/slog"
	"os"

	"salesboard/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("application exited with error", "error", err)
		os.Exit(1)
	}
}
