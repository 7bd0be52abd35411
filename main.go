package main

import (
	"fmt"
	"os"
)

const Version = "0.3.0"

func main() {
	args := os.Args[1:]
	if len(args) == 1 && (args[0] == "--version" || args[0] == "-v") {
		fmt.Println("weft " + Version)
		return
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "weft: config: %v (using defaults)\n", err)
	}

	app := NewApp(args, cfg)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "weft: %v\n", err)
		os.Exit(1)
	}
}
