package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aegisshield/irregular-report/internal/auth"
	"github.com/aegisshield/irregular-report/internal/config"
	"github.com/aegisshield/irregular-report/internal/report"
	"github.com/aegisshield/irregular-report/internal/reporting"
)

func newRenderCommand() *cobra.Command {
	var (
		input  string
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report file (JSON or YAML) to xml, pdf or xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			logger, err := cfg.InitLogger()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			r, err := report.Load(input)
			if err != nil {
				return err
			}

			engine := reporting.NewReportEngine(cfg.Reporting, logger, nil, nil)
			export, err := engine.Export(context.Background(), r, format)
			if err != nil {
				return err
			}

			if output == "" {
				output = filepath.Join(filepath.Dir(input), export.FileName)
			}
			if output == "-" {
				_, err = cmd.OutOrStdout().Write(export.Content)
				return err
			}
			if err := os.WriteFile(output, export.Content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			logger.Info("Report rendered",
				zap.String("input", input),
				zap.String("output", output),
				zap.String("format", format),
				zap.Int("size_bytes", len(export.Content)),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "in", "i", "", "report file (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file, - for stdout (default: <report number>.<format> next to the input)")
	cmd.Flags().StringVarP(&format, "format", "f", reporting.FormatXML, "output format: xml, pdf or xlsx")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func newTokenCommand() *cobra.Command {
	var (
		userID string
		roles  []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token signed with the configured secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if !cfg.Auth.Enabled {
				return fmt.Errorf("authentication is disabled in the configuration")
			}

			token, err := auth.NewService(cfg.Auth).GenerateToken(userID, roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user identifier carried in the token")
	cmd.Flags().StringSliceVarP(&roles, "roles", "r", []string{auth.RoleCompliance}, "roles granted to the token")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
