package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/lodestone"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Definitions lodestone.DefinitionSource
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Definitions string `short:"d" name:"definitions" env:"LODESTONE_DEFINITIONS" default:"definitions" type:"path" help:"Directory of definition files"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`

	Extract  ExtractCmd  `cmd:"" help:"Extract every field of a definition set from HTML files"`
	Validate ValidateCmd `cmd:"" help:"Validate definition sets"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Name        string   `arg:"" help:"Definition set name (e.g. character)"`
	Files       []string `arg:"" help:"HTML files to read, - for stdin"`
	BaseURL     string   `name:"base-url" env:"LODESTONE_BASE_URL" default:"https://na.finalfantasyxiv.com" help:"Base URL for site-relative links"`
	Format      string   `short:"f" enum:"text,json" default:"text" help:"Output format (text, json)"`
	Concurrency int      `short:"c" default:"4" help:"Files parsed concurrently"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Names []string `arg:"" optional:"" help:"Definition set names (default: all)"`
}
