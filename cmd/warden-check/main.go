// Copyright 2026 The Warden Authors
// SPDX-License-Identifier: Apache-2.0

// warden-check evaluates an access query against a Warden engine and
// prints the decision with a full evaluation trace.
//
// The engine is built from a YAML config file (WARDEN_CONFIG or
// --config) naming the baseline policy document, the augmentation
// marker, and the trusted origins. The query names a calling origin
// and a requested permission:
//
//	warden-check --config warden.yaml \
//	    --origin file:///plugins/analyzer \
//	    --type file --target /var/data --actions write
//
// With --explain, the computed delta permission set and exclusion set
// are printed alongside the decision. With --snapshot, a compressed
// audit record of the constructed engine is written to the given path.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/warden-project/warden/lib/config"
	"github.com/warden-project/warden/lib/gate"
	"github.com/warden-project/warden/lib/grantfile"
	"github.com/warden-project/warden/lib/origin"
	"github.com/warden-project/warden/lib/permission"
	"github.com/warden-project/warden/lib/propstore"
	"github.com/warden-project/warden/lib/snapshot"
	"github.com/warden-project/warden/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath     string
		originLocation string
		certificates   []string
		permissionType string
		target         string
		actions        []string
		jsonOutput     bool
		explain        bool
		snapshotPath   string
		verbose        bool
	)

	flagSet := pflag.NewFlagSet("warden-check", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to warden.yaml (default: WARDEN_CONFIG)")
	flagSet.StringVar(&originLocation, "origin", "", "location of the calling origin (empty for an unknown code source)")
	flagSet.StringArrayVar(&certificates, "cert", nil, "hex BLAKE3 fingerprint of a signing certificate (repeatable)")
	flagSet.StringVar(&permissionType, "type", "", "permission type (e.g. file, net, runtime)")
	flagSet.StringVar(&target, "target", "", "permission target")
	flagSet.StringSliceVar(&actions, "actions", nil, "permission actions (comma-separated)")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit the result as JSON")
	flagSet.BoolVar(&explain, "explain", false, "print the delta permission set and exclusion set")
	flagSet.StringVar(&snapshotPath, "snapshot", "", "write a compressed engine audit snapshot to this path")
	flagSet.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other Warden binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("warden-check")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	if permissionType == "" {
		return fmt.Errorf("--type is required")
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	engine, err := buildEngine(configPath, logger)
	if err != nil {
		return err
	}

	if snapshotPath != "" {
		if err := snapshot.WriteFile(snapshotPath, engine.Snapshot()); err != nil {
			return err
		}
	}

	caller, err := parseOrigin(originLocation, certificates)
	if err != nil {
		return err
	}
	request, err := permission.New(permissionType, target, actions...)
	if err != nil {
		return err
	}

	result := engine.Check(caller, request)

	if jsonOutput {
		return emitJSON(engine, caller, request, result, explain)
	}

	formatResult(engine, caller, request, result, explain)
	if result.Decision == gate.Deny {
		os.Exit(2)
	}
	return nil
}

// buildEngine loads the config and policy document and constructs the
// decision engine.
func buildEngine(configPath string, logger *slog.Logger) (*gate.Engine, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	document, err := grantfile.ReadFile(cfg.Policy)
	if err != nil {
		return nil, err
	}

	return gate.New(gate.Config{
		Document:          document,
		Marker:            cfg.Marker,
		SyntheticLocation: cfg.SyntheticLocation,
		Properties:        propstore.New(cfg.Properties),
		Identities:        cfg,
		Heuristics:        cfg.Heuristics,
		Logger:            logger,
	})
}

// parseOrigin builds the calling origin from CLI flags. An empty
// location with no certificates is the zero origin: an unknown code
// source.
func parseOrigin(location string, certificates []string) (origin.Origin, error) {
	if location == "" {
		if len(certificates) > 0 {
			return origin.Origin{}, fmt.Errorf("--cert requires --origin")
		}
		return origin.Origin{}, nil
	}
	fingerprints := make([]origin.Fingerprint, 0, len(certificates))
	for _, encoded := range certificates {
		fp, err := origin.ParseFingerprint(encoded)
		if err != nil {
			return origin.Origin{}, err
		}
		fingerprints = append(fingerprints, fp)
	}
	return origin.New(location, fingerprints...)
}

// checkOutput is the --json output shape.
type checkOutput struct {
	Origin     string   `json:"origin,omitempty"`
	Permission string   `json:"permission"`
	Decision   string   `json:"decision"`
	Reason     string   `json:"reason"`
	Delta      []string `json:"delta,omitempty"`
	Excluded   []string `json:"excluded,omitempty"`
	Heuristics []string `json:"heuristics,omitempty"`
}

func emitJSON(engine *gate.Engine, caller origin.Origin, request permission.Permission, result gate.Result, explain bool) error {
	output := checkOutput{
		Origin:     caller.Location(),
		Permission: request.String(),
		Decision:   result.Decision.String(),
		Reason:     result.Reason.String(),
	}
	if explain {
		for _, p := range engine.Delta().Permissions() {
			output.Delta = append(output.Delta, p.String())
		}
		for _, o := range engine.Excluded() {
			output.Excluded = append(output.Excluded, o.Location())
		}
		output.Heuristics = engine.Heuristics()
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// formatResult writes a human-readable decision trace.
func formatResult(engine *gate.Engine, caller origin.Origin, request permission.Permission, result gate.Result, explain bool) {
	fmt.Printf("DECISION: %s\n", result.Decision)
	fmt.Printf("REASON:   %s\n", result.Reason)
	fmt.Println()
	fmt.Printf("QUERY:    %s requesting %s\n", caller, request)

	if !explain {
		return
	}

	fmt.Println()
	fmt.Println("DELTA PERMISSIONS:")
	delta := engine.Delta().Permissions()
	if len(delta) == 0 {
		fmt.Println("  (none — engine behaves identically to the baseline policy)")
	}
	for _, p := range delta {
		fmt.Printf("  %s\n", p)
	}

	fmt.Println()
	fmt.Println("EXCLUDED ORIGINS:")
	for _, o := range engine.Excluded() {
		fmt.Printf("  %s\n", o)
	}

	heuristics := engine.Heuristics()
	if len(heuristics) > 0 {
		fmt.Println()
		fmt.Printf("HEURISTICS: locations containing [%s] are denied delta grants\n",
			strings.Join(heuristics, ", "))
	}
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Println("warden-check — evaluate an access query against a Warden engine")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  warden-check --config warden.yaml --origin <location> --type <type> [--target <target>] [--actions a,b]")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println(flagSet.FlagUsages())
	fmt.Println("Exit status is 0 for allow, 2 for deny, 1 for errors.")
}
