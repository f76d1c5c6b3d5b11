package main

import (
	"os"

	"github.com/muzilix/dbapi-docs/pkg/cli"
)

func main() {
	logLevel := os.Getenv("DOCS_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger := cli.NewLogger(logLevel, os.Stderr)

	root := cli.NewRootCommand(&cli.Env{Out: os.Stdout, Log: logger})
	if err := root.Execute(); err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
