package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
)

// seedCaller figura como autor de los productos cargados por la CLI.
const seedCaller = "pedidosctl"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga inicial de datos",
}

var (
	catalogFile    string
	catalogCharset string

	userName, userLastName, userEmail, userPassword string
)

var seedProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Importa productos desde un CSV (name,price,stock)",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(catalogFile)
		if err != nil {
			return fmt.Errorf("abrir catálogo: %w", err)
		}
		defer f.Close()

		rows, err := ReadCatalog(f, catalogCharset)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		_, pool, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
		for i, row := range rows {
			p, err := uc.Create(ctx, seedCaller, row)
			if err != nil {
				return fmt.Errorf("fila %d (%s): %w", i+2, row.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Price, p.Stock)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d productos importados\n", len(rows))
		return nil
	},
}

var seedUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Registra un vendedor",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, pool, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret: cfg.JWT.Secret,
			TTL:    cfg.JWT.TTL(),
			Issuer: cfg.JWT.Issuer,
		})
		u, err := uc.RegisterUser(ctx, dto.RegisterRequest{
			Name:     userName,
			LastName: userLastName,
			Email:    userEmail,
			Password: userPassword,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "vendedor %s creado (%s)\n", u.Email, u.ID)
		return nil
	},
}

func init() {
	seedProductsCmd.Flags().StringVarP(&catalogFile, "file", "f", "catalogo.csv", "CSV con columnas name,price,stock")
	seedProductsCmd.Flags().StringVar(&catalogCharset, "charset", "utf-8", "codificación del archivo: utf-8 o latin1")

	seedUserCmd.Flags().StringVar(&userName, "name", "", "nombre")
	seedUserCmd.Flags().StringVar(&userLastName, "last-name", "", "apellido")
	seedUserCmd.Flags().StringVar(&userEmail, "email", "", "email (único)")
	seedUserCmd.Flags().StringVar(&userPassword, "password", "", "password (mínimo 6 caracteres)")
	for _, name := range []string{"name", "last-name", "email", "password"} {
		_ = seedUserCmd.MarkFlagRequired(name)
	}

	seedCmd.AddCommand(seedProductsCmd)
	seedCmd.AddCommand(seedUserCmd)
}
