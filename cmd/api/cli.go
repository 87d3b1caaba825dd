package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	pg "pet-clinic-roster/internal/adapters/storage/postgres"
	"pet-clinic-roster/internal/config"
	"pet-clinic-roster/internal/domain/roster"

	"github.com/spf13/cobra"
)

func resolveCmd(envFile *string) *cobra.Command {
	var role, user, query string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resuelve un roster una vez y lo imprime como JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := roster.ParseRole(role)
			if err != nil {
				return fmt.Errorf("--role must be owner or veterinarian: %w", err)
			}
			a, err := newApp(*envFile)
			if err != nil {
				return err
			}
			defer a.close()

			entries, err := a.service().Resolve(cmd.Context(), roster.ResolveInput{
				SearchTerm:   query,
				Role:         r,
				ActingUserID: user,
			})
			if err != nil {
				return err
			}
			return writeEntries(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVar(&role, "role", "veterinarian", "owner | veterinarian")
	cmd.Flags().StringVar(&user, "user", "", "ID del usuario que consulta (requerido)")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Texto a buscar")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// searchCmd lee términos de stdin (uno por línea) como si se tipearan en la
// caja de búsqueda; solo se imprime el resultado de la búsqueda vigente.
func searchCmd(envFile *string) *cobra.Command {
	var role, user string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Búsqueda en vivo: un término por línea en stdin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := roster.ParseRole(role)
			if err != nil {
				return fmt.Errorf("--role must be owner or veterinarian: %w", err)
			}
			a, err := newApp(*envFile)
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			var mu sync.Mutex
			ls := roster.NewLiveSearch(a.service(), r, user, a.cfg.SearchDebounce, func(res roster.Result) {
				mu.Lock()
				defer mu.Unlock()
				if res.Err != nil {
					fmt.Fprintf(out, "# %d %q error: %v\n", res.Seq, res.Term, res.Err)
					return
				}
				fmt.Fprintf(out, "# %d %q (%d)\n", res.Seq, res.Term, len(res.Entries))
				_ = writeEntries(out, res.Entries)
			})
			defer ls.Close()

			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				ls.Submit(strings.TrimRight(sc.Text(), "\r"))
			}
			ls.Drain()
			return sc.Err()
		},
	}

	cmd.Flags().StringVar(&role, "role", "veterinarian", "owner | veterinarian")
	cmd.Flags().StringVar(&user, "user", "", "ID del usuario que consulta (requerido)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func migrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea el esquema de lectura en Postgres (DB_DSN)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFile(*envFile)
			if err != nil {
				return err
			}
			if cfg.DBDSN == "" {
				return fmt.Errorf("DB_DSN is required for migrate")
			}
			db, err := pg.Open(cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
			return nil
		},
	}
}

func writeEntries(w io.Writer, entries []roster.RosterEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
