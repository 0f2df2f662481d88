package main

import (
	"log/slog"
	"os"

	"github.com/thiagokokada/gitk-refs/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		slog.Error("gitk-refs", slog.Any("error", err))
		os.Exit(1)
	}
}
