// stlexport is a CLI utility that exports YAML scenes as STL meshes.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/stlexport/internal/config"
	"github.com/Faultbox/stlexport/internal/export"
	"github.com/Faultbox/stlexport/internal/logger"
	"github.com/Faultbox/stlexport/internal/scene"
	"github.com/Faultbox/stlexport/pkg/math"
	"github.com/Faultbox/stlexport/pkg/stl"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	if err := config.ParseArgs(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	switch command {
	case "export", "x":
		cmdExport(config.Args())
	case "info":
		cmdInfo(config.Args())
	case "init":
		cmdInit(config.Args())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stlexport - export scenes as STL triangle meshes

Usage:
  stlexport <command> [options]

Commands:
  export <scene.yaml>   Export a scene (binary STL to stdout by default)
  info <file.stl>       Show triangle count, header and bounds of an STL file
  init [path]           Write the default config file

Options:
  -config <path>        Config file (default ./stlexport.yaml or user config dir)
  -o <path>             Output file
  -format binary|ascii  Output encoding
  -header <text>        STL header (80 bytes max)
  -debug                Debug logging
  -log-file <path>      Also log to a rotating file

Examples:
  stlexport export -o model.stl scene.yaml
  stlexport export -format ascii scene.yaml > model.stl
  stlexport info model.stl`)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdExport(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stlexport export [options] <scene.yaml>")
		os.Exit(1)
	}
	cfg := loadConfig()
	defer logger.Sync()

	sc, err := scene.Load(args[0])
	if err != nil {
		logger.Fatal("failed to load scene", zap.Error(err))
	}
	nodes, meshes := sc.Count()
	logger.Log.Debug("scene loaded",
		zap.String("scene", sc.Name),
		zap.Int("nodes", nodes),
		zap.Int("meshes", meshes))

	n, err := writeOutput(cfg.Export.Output, func(w io.Writer) (uint32, error) {
		sess := export.NewSession(export.Options{
			Header: cfg.Export.Header,
			Mode:   cfg.Export.Format,
			Logger: logger.Log,
		}, w)
		return scene.Export(sc, sess)
	})
	if err != nil {
		logger.Fatal("export failed", zap.String("scene", args[0]), zap.Error(err))
	}
	logger.Log.Info("wrote STL",
		zap.String("output", outputName(cfg.Export.Output)),
		zap.Uint32("triangles", n))
}

// writeOutput runs fn against stdout or a temporary file that is renamed into
// place only when fn succeeds, so a failed export leaves no file behind.
func writeOutput(path string, fn func(io.Writer) (uint32, error)) (uint32, error) {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".stlexport-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	// CreateTemp makes the file owner-only; exports are ordinary files.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return 0, err
	}
	n, err := fn(tmp)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, err
	}
	return n, os.Rename(tmp.Name(), path)
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stlexport info <file.stl>")
		os.Exit(1)
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	m, err := stl.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File:      %s\n", args[0])
	fmt.Printf("Format:    %s\n", m.Mode)
	fmt.Printf("Header:    %s\n", m.Header)
	fmt.Printf("Triangles: %d\n", len(m.Facets))
	if m.Mode == stl.Binary {
		fmt.Printf("Size:      %d bytes\n", stl.BinarySize(uint32(len(m.Facets))))
	}
	if len(m.Facets) == 0 {
		return
	}

	lo, hi := bounds(m.Facets)
	fmt.Printf("Bounds:    (%g, %g, %g) - (%g, %g, %g)\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)

	degenerate := 0
	for _, f := range m.Facets {
		if export.IsDegenerate(f.Vertices[0], f.Vertices[1], f.Vertices[2]) {
			degenerate++
		}
	}
	if degenerate > 0 {
		fmt.Printf("Degenerate: %d\n", degenerate)
	}
}

func bounds(facets []stl.Facet) (lo, hi math.Vec3) {
	lo = facets[0].Vertices[0]
	hi = lo
	for _, f := range facets {
		for _, v := range f.Vertices {
			lo.X, hi.X = min(lo.X, v.X), max(hi.X, v.X)
			lo.Y, hi.Y = min(lo.Y, v.Y), max(hi.Y, v.Y)
			lo.Z, hi.Z = min(lo.Z, v.Z), max(hi.Z, v.Z)
		}
	}
	return lo, hi
}

func cmdInit(args []string) {
	cfg := config.Default()
	var err error
	path := filepath.Join(config.ConfigDir(), "stlexport.yaml")
	if len(args) > 0 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
