// Copyright (c) 2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the liblend
// project. Commands are organized using the cobra library.
// The root command starts the web server itself, the "db" sub-command
// can be used for the database initialization actions, and the "demo"
// sub-command runs an end-to-end lending scenario on an embedded
// SQLite database.
//
//	./liblend [-c /path/of/main/config.yaml]         # start web server
//	./liblend db init-dev [-c /path/of/main/config.yaml]
//	./liblend db init-prod [-c /path/of/main/config.yaml]
//	./liblend demo [--db /path/of/demo.db]
package command

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/momeni/liblend/pkg/adapter/config"
	"github.com/momeni/liblend/pkg/adapter/restful/gin"
	"github.com/momeni/liblend/pkg/adapter/restful/gin/routes"
	"github.com/momeni/liblend/pkg/core/log"
	"github.com/momeni/liblend/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "liblend",
	Short: "A small library lending management web project",
	Long: `A small library lending management web project which keeps a
catalog of works, a registry of patrons, and the lifecycle of loans.
Works can be catalogued and replenished, lent to registered patrons,
returned, and charged with late return fees which accumulate as each
patron's outstanding debt. Inventory, debtors, and per-patron history
reports are exposed over a REST API.
The core use cases and models layers are kept independent of the
third-party dependent adapters layer, interacting with them through a
series of interfaces. The GORM framework is used for PostgreSQL and
SQLite database interactions and the Gin Gonic web framework serves
the REST APIs.`,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(ctx, e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	log.Info(ctx, "starting web server")
	if err = e.Run(); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// loadConfig reads the cfgPath file and loads, validates, and
// normalizes its configuration settings.
func loadConfig() (*config.Config, error) {
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("reading %q config file: %w", cfgPath, err)
	}
	c, err := config.Load(data)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		log.Setup(slog.LevelInfo)
		fixConfigPath()
	})
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
// By the way, default value is not necessarily a single path and may
// check several paths sequentially and take the highest priority one
// among the existing paths. For example, a user-specific path may take
// precedence over a file in /etc which is selected over a file in /usr.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
