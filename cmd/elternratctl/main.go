package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gitea.jw6.us/james/elternrat/internal/config"
	"gitea.jw6.us/james/elternrat/internal/mailmerge"
	"gitea.jw6.us/james/elternrat/internal/store"
)

var (
	flagBackend string
	flagData    string
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "elternratctl",
		Short: "Administrative tool for the Elternrat document store",
		Long:  "Export, import and reset the Elternrat document without a running server",
	}
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend (file or sqlite; defaults to APP_DATA_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "", "path to the data file or database (defaults to APP_DATA_PATH)")

	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newResetCommand())
	rootCmd.AddCommand(newSchuljahrCommand())
	rootCmd.AddCommand(newTemplateCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the full document as pretty-printed JSON",
		Run: func(cmd *cobra.Command, args []string) {
			st, closeFn := openStore()
			defer closeFn()
			fmt.Println(st.Export())
		},
	}
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the document with a backup file",
		Long:  "Validate a backup file and replace the stored document. A malformed or version-mismatched backup leaves the document untouched.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				log.Fatalf("read backup: %v", err)
			}
			st, closeFn := openStore()
			defer closeFn()
			if err := st.Import(string(raw)); err != nil {
				log.Fatalf("import: %v", err)
			}
			fmt.Println("document imported")
		},
	}
}

func newResetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the document with a fresh default state",
		Run: func(cmd *cobra.Command, args []string) {
			if !yes {
				log.Fatal("refusing to reset without --yes")
			}
			st, closeFn := openStore()
			defer closeFn()
			st.ResetAll()
			fmt.Println("document reset to defaults")
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newSchuljahrCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schuljahr [n]",
		Short: "Print the current school year, or the last n school years",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				fmt.Println(store.CurrentSchoolYear())
				return
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				log.Fatalf("n must be a positive number (got %q)", args[0])
			}
			for _, year := range store.LastNYears(n, time.Now()) {
				fmt.Println(year)
			}
		},
	}
}

func newTemplateCommand() *cobra.Command {
	templateCmd := &cobra.Command{
		Use:   "template",
		Short: "Email template commands",
	}

	var vars []string
	renderCmd := &cobra.Command{
		Use:   "render <template-id>",
		Short: "Render a stored template with --var substitutions",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			values := map[string]string{}
			for _, v := range vars {
				key, val, ok := strings.Cut(v, "=")
				if !ok {
					log.Fatalf("--var needs key=value (got %q)", v)
				}
				values[key] = val
			}

			st, closeFn := openStore()
			defer closeFn()
			for _, t := range st.State().Entities.EmailTemplates {
				if t.ID == args[0] {
					fmt.Println("Betreff: " + mailmerge.Apply(t.Subject, values))
					fmt.Println()
					fmt.Println(mailmerge.Apply(t.Body, values))
					return
				}
			}
			log.Fatalf("template %q not found", args[0])
		},
	}
	renderCmd.Flags().StringArrayVar(&vars, "var", nil, "placeholder value as key=value (repeatable)")

	templateCmd.AddCommand(renderCmd)
	return templateCmd
}

// openStore builds a gateway from flags (falling back to the server's env
// configuration) and opens the store on it.
func openStore() (*store.Store, func()) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	backend := cfg.Storage.Backend
	if flagBackend != "" {
		backend = flagBackend
	}
	path := cfg.Storage.Path
	if flagData != "" {
		path = flagData
	}

	switch backend {
	case config.BackendSQLite:
		gw, err := store.OpenSQLiteGateway(path)
		if err != nil {
			log.Fatalf("open sqlite storage: %v", err)
		}
		return store.Open(gw), func() { _ = gw.Close() }
	case config.BackendFile:
		return store.Open(&store.FileGateway{Path: path}), func() {}
	default:
		log.Fatalf("unknown backend %q", backend)
		return nil, nil
	}
}
