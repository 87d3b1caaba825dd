package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "roster-api",
		Short:         "Patient roster API (dueños y veterinarios)",
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Archivo .env opcional; el entorno tiene prioridad")

	rootCmd.AddCommand(serveCmd(&envFile))
	rootCmd.AddCommand(resolveCmd(&envFile))
	rootCmd.AddCommand(searchCmd(&envFile))
	rootCmd.AddCommand(migrateCmd(&envFile))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
