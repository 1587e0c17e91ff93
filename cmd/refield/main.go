package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"refield/internal/adapters/sqlite"
	"refield/internal/adapters/tui"
	"refield/internal/config"
)

func main() {
	dbFlag := flag.String("db", config.DBPath(), "path to the record database")
	flag.Parse()

	store := sqlite.NewStore()
	if err := store.Open(*dbFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	app := tui.NewApp(store)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
