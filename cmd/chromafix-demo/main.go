// Command chromafix-demo shows the correction pipeline on a synthetic test
// palette: original, simulated dichromat view, and corrected output side by
// side. No camera required.
package main

import (
	"github.com/rs/zerolog"

	"chromafix/internal/gui"
	"chromafix/internal/logger"
)

func main() {
	log := logger.NewConsoleLogger(zerolog.InfoLevel)
	gui.NewDemo(log).Run()
}
