package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Verifica o estado do serviço",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()
	if err := a.requireAuth(); err != nil {
		return err
	}

	resp, err := a.client.Health(cmd.Context())
	if err != nil {
		color.Red("● Sistema offline")
		return err
	}

	if resp.Status == "healthy" {
		color.Green("● Sistema operacional")
	} else {
		color.Red("● Sistema offline (%s)", resp.Status)
	}
	fmt.Printf("ambiente:  %s\n", resp.Environment)
	fmt.Printf("vector db: %s\n", resp.VectorDB)
	fmt.Printf("vetores:   %d\n", resp.TotalVectors)
	fmt.Printf("timestamp: %s\n", resp.Timestamp)
	return nil
}
