package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"formulakb/internal/export"
	"formulakb/internal/handlers"
	"formulakb/internal/kb"
	"formulakb/internal/views/pages"
)

func newDiagnoseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Check the store connection and list its tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("store connection failed: %w", err)
			}
			diagnoser, ok := store.(kb.Diagnoser)
			if !ok {
				return fmt.Errorf("store does not report diagnostics")
			}
			diag, err := diagnoser.Diagnose(cmd.Context())
			out := cmd.OutOrStdout()
			for _, line := range pages.DiagnosticsLines(pages.DiagnosticsView{Diagnostics: diag, Err: err}) {
				fmt.Fprintln(out, line.Message)
			}
			return err
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var dest string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a CSV snapshot of every table to a directory or s3://bucket/prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			if dest == "" {
				dest = cfg.Export.Destination
			}
			if dest == "" {
				return fmt.Errorf("no destination: pass --dest or set KB_EXPORT_DEST")
			}
			sink, err := export.Open(cmd.Context(), dest, export.Options{
				Region:    cfg.Export.S3Region,
				Endpoint:  cfg.Export.S3Endpoint,
				PathStyle: cfg.Export.S3PathStyle,
			})
			if err != nil {
				return err
			}
			session, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			manifest, err := export.Snapshot(cmd.Context(), session.Snapshot(), sink, a.now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported %d file(s) to %s\n", len(manifest.Files), manifest.Location)
			for _, file := range manifest.Files {
				fmt.Fprintln(out, "  "+file)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "", "Directory or s3://bucket/prefix (default from KB_EXPORT_DEST)")
	return cmd
}

func newHashPasswordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for KB_EDITOR_PASSWORD_HASH",
		Long:  "Print a bcrypt hash for KB_EDITOR_PASSWORD_HASH. Without an argument the password is read from the first line of stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				scanner := bufio.NewScanner(a.stdin)
				if scanner.Scan() {
					password = scanner.Text()
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}
			password = strings.TrimRight(password, "\r\n")
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}
			hash, err := handlers.HashPassword(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
