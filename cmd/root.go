// Package cmd wires configuration, logging and the three entry points.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"pizza-deprizza/config"
	"pizza-deprizza/logger"
)

type app struct {
	cfg    config.Config
	log    *slog.Logger
	out    io.Writer
	in     io.Reader
	envArg string
}

// NewRootCommand builds the pizza-deprizza command tree.
func NewRootCommand() *cobra.Command {
	a := &app{out: os.Stdout, in: os.Stdin}

	root := &cobra.Command{
		Use:           "pizza-deprizza",
		Short:         "Pizza Deprizza order API, kitchen dashboard and storefront tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.envArg)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFmt, Output: cmd.ErrOrStderr()})
			a.out = cmd.OutOrStdout()
			a.in = cmd.InOrStdin()
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.envArg, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(
		newServeCommand(a),
		newKitchenCommand(a),
		newDeliveryStatusCommand(a),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
