// pedidosctl tareas de administración: migraciones y carga inicial de datos.
//
// Uso:
//
//	pedidosctl migrate up|down|status
//	pedidosctl seed products --file catalogo.csv [--charset latin1]
//	pedidosctl seed user --name Ana --last-name Pérez --email ana@example.com --password secreto
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pedidosctl",
	Short:         "Administración de la API de pedidos",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
