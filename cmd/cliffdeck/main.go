package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		numQubits int
		seed      int64
		loadPath  string
		verbose   bool
	)

	root := &cobra.Command{
		Use:   "cliffdeck",
		Short: "Interactive stabilizer-circuit deck",
		Long: `cliffdeck is a terminal deck for Clifford circuits: place gates on a
grid, watch the stabilizer tableau evolve, and inspect measurement records.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()
			if verbose {
				var err error
				logger, err = zap.NewDevelopment()
				if err != nil {
					return err
				}
			}
			defer logger.Sync()

			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			m := initialModel(numQubits, seed, logger)
			if loadPath != "" {
				text, err := os.ReadFile(loadPath)
				if err != nil {
					return err
				}
				var c Circuit
				if err := c.ParseText(string(text)); err != nil {
					return err
				}
				if c.NumQubits < numQubits {
					c.NumQubits = numQubits
				}
				m.circuit = c
				m.syncEditor()
				m.simulate()
			}

			p := tea.NewProgram(m, tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	root.Flags().IntVarP(&numQubits, "qubits", "n", 4, "initial qubit count")
	root.Flags().Int64Var(&seed, "seed", 0, "measurement seed (0 picks one)")
	root.Flags().StringVarP(&loadPath, "load", "l", "", "circuit file to load")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "engine debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
