/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Rpncalc Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rpncalc/rpncalc/core/batch"
	"github.com/rpncalc/rpncalc/core/config"
	"github.com/rpncalc/rpncalc/core/expr"
	"github.com/rpncalc/rpncalc/core/server"
	"github.com/rpncalc/rpncalc/core/shell"
	"github.com/rpncalc/rpncalc/core/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "rpncalc",
	Short: "Evaluate space-separated arithmetic expressions",
	Long: `rpncalc evaluates arithmetic expressions such as "( 1 + 2 ) * 3".

Numbers, the operators + - * / ^ and parentheses must be separated by a
single space. "-5" is a negative number; a lone "-" is subtraction.
Type "exit" to leave the interactive prompt.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg.ApplyEnv(nil)
		return cfg.Validate()
	},
	RunE: runShell,
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>...",
	Short: "Evaluate one expression and print the result",
	Long: `Evaluate one expression. Arguments are joined with single spaces, so
both of these work:

  rpncalc eval "2 ^ 3 ^ 2"
  rpncalc eval 2 ^ 3 ^ 2
  rpncalc eval -5 + 3

Flags are not parsed, so negative numbers need no quoting.`,
	// "-5" is a literal, not a shorthand flag
	DisableFlagParsing: true,
	Args:               cobra.MinimumNArgs(1),
	RunE:               runEval,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web calculator and the JSON API",
	RunE:  runServe,
}

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Evaluate one expression per line and print CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBatch,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable coloured output")
	rootCmd.PersistentFlags().IntVar(&cfg.HistoryLimit, "history", cfg.HistoryLimit, "number of past expressions to keep")
	rootCmd.Flags().BoolVar(&cfg.Plain, "plain", cfg.Plain, "use the line prompt even on a terminal")

	serveCmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address (env "+config.EnvAddr+")")
	serveCmd.Flags().IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "number of parsed expressions to cache")

	batchCmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent evaluations")

	rootCmd.AddCommand(evalCmd, serveCmd, batchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runShell(cmd *cobra.Command, args []string) error {
	if isTerminal() && !cfg.Plain {
		tuiConfig := tui.DefaultConfig()
		tuiConfig.HistoryLimit = cfg.HistoryLimit
		return tui.Run(tuiConfig)
	}
	in := cmd.InOrStdin()
	prompt := in == io.Reader(os.Stdin) && isTerminal()
	return shell.New(cfg.NoColor, prompt).Run(cmd.Context(), in, cmd.OutOrStdout())
}

func runEval(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
		return cmd.Help()
	}
	result, err := expr.Calculate(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), expr.FormatResult(result))
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	fmt.Printf("Server starting on http://%s\n", cfg.Addr)
	if err := srv.Serve(cmd.Context(), cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	failed, err := batch.Run(cmd.Context(), in, cmd.OutOrStdout(), cfg.Workers)
	if err != nil {
		return err
	}
	if failed > 0 {
		log.Printf("%d expression(s) failed", failed)
	}
	return nil
}
