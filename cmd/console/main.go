package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"os"

	"titulos-console/internal/config"
	"titulos-console/internal/console/coordinator"
	"titulos-console/internal/console/transport"
	"titulos-console/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// osc52Clipboard copies via the terminal's OSC 52 escape sequence, so copy
// works over SSH where no system clipboard is reachable. Emitted on stderr
// because bubbletea owns stdout.
type osc52Clipboard struct{}

func (osc52Clipboard) WriteText(text string) error {
	_, err := fmt.Fprintf(os.Stderr, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	apiURL := flag.String("api-url", cfg.APIBaseURL, "catalog API base URL")
	logPath := flag.String("log-file", "", "debug log file (default: logging off)")
	flag.Parse()

	logger := zerolog.Nop()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = zerolog.New(f).With().Timestamp().Logger()
	}

	coord := coordinator.New(transport.NewClient(*apiURL), logger, osc52Clipboard{})

	p := tea.NewProgram(tui.NewModel(coord), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
