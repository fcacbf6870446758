package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"github.com/sqweek/dialog"

	"github.com/QEStudios/CDLCArrangementBuilder/arrangement"
	"github.com/QEStudios/CDLCArrangementBuilder/bassfix"
	"github.com/QEStudios/CDLCArrangementBuilder/config"
	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
	"github.com/QEStudios/CDLCArrangementBuilder/version"
)

var manifestExts = []string{".json", ".yml", ".yaml"}

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "", log.Ldate|log.Ltime)

	cfg := config.Load()
	if cfg.YmlError != nil {
		logger.Printf("ignoring user config: %v", cfg.YmlError)
	}

	cwd, err := os.Getwd()
	if err != nil {
		logger.Fatalf("failed to get current working directory: %v", err)
	}

	var gameVersion, xmlDir string
	var dump, showVersion bool
	pflag.BoolVar(&cfg.FixMultiTone, "fix-multitone", cfg.FixMultiTone, "convert multitone arrangements without tone changes to a single tone")
	pflag.BoolVar(&cfg.FixLowBass, "fix-low-bass", cfg.FixLowBass, "raise bass tunings below the game's range by one octave")
	pflag.IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "number of arrangements built at once, 0 for one per CPU")
	pflag.StringVarP(&gameVersion, "game", "g", string(cfg.GameVersion), "game version of the tuning table (RS2012 or RS2014)")
	pflag.StringVar(&cfg.TuningsFile, "tunings", cfg.TuningsFile, "YAML tuning table to use instead of the built-in one")
	pflag.StringVarP(&xmlDir, "xml-dir", "x", "", "directory of the arrangement files, defaults to the manifest's directory")
	pflag.BoolVar(&dump, "dump", false, "dump the built arrangements")
	pflag.BoolVarP(&showVersion, "version", "v", false, "print version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}

	paths, err := choosePaths(cwd, pflag.Args())
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			logger.Printf("User cancelled the file dialog")
			os.Exit(1)
		}
		logger.Fatalf("failed to determine manifest paths: %v", err)
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		logger.Fatalf("failed to load tuning table: %v", err)
	}

	jobs, err := arrangement.JobsFor(paths, xmlDir, cfg.Options())
	if err != nil {
		logger.Fatalf("%v", err)
	}

	game := tuning.GameVersion(gameVersion)
	if game != tuning.RS2012 && game != tuning.RS2014 {
		logger.Fatalf("unknown game version %q", gameVersion)
	}

	logger.Printf("Loaded %d %s tuning(s)", catalog.Len(game), game)
	builder := arrangement.NewBuilder(catalog, bassfix.New(logger), logger)
	builder.GameVersion = game
	logger.Printf("Building %d arrangement(s)", len(jobs))

	failed := 0
	for _, r := range builder.BuildAll(jobs, cfg.Workers) {
		if r.Err != nil {
			failed++
			logger.Printf("build failed: %v", r.Err)
			continue
		}
		size := ""
		if info, err := os.Stat(r.Arrangement.XMLPath); err == nil {
			size = " " + humanize.Bytes(uint64(info.Size()))
		}
		fmt.Printf("%s (%s%s)\n", r.Arrangement, filepath.Base(r.Arrangement.XMLPath), size)
		if dump {
			spew.Dump(r.Arrangement)
		}
	}
	if failed > 0 {
		logger.Printf("%d of %d arrangement(s) failed", failed, len(jobs))
		os.Exit(1)
	}
}

// choosePaths returns the manifest paths either from the command-line args
// or from an interactive file dialog. Directories are expanded to the
// manifests they contain.
func choosePaths(cwd string, args []string) ([]string, error) {
	if len(args) > 0 {
		var paths []string
		for _, arg := range args {
			absPath, err := filepath.Abs(arg)
			if err != nil {
				return nil, fmt.Errorf("cannot get absolute path: %w", err)
			}
			expanded, err := expandPath(absPath)
			if err != nil {
				return nil, fmt.Errorf("passed argument is not a valid path: %w", err)
			}
			paths = append(paths, expanded...)
		}
		return paths, nil
	}

	path, err := dialog.
		File().
		Title("Open arrangement manifest").
		Filter("Arrangement manifests (*.json, *.yml)", "json", "yml", "yaml").
		SetStartDir(cwd).
		Load()
	if err != nil {
		// Caller checks for dialog.ErrCancelled.
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot get absolute path: %w", err)
	}
	if absPath == "" {
		return nil, dialog.ErrCancelled
	}
	if err := validatePath(absPath); err != nil {
		return nil, fmt.Errorf("dialog selection invalid: %w", err)
	}
	return []string{absPath}, nil
}

func expandPath(p string) ([]string, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("cannot stat file: %w", err)
	}
	if !info.IsDir() {
		if err := validatePath(p); err != nil {
			return nil, err
		}
		return []string{p}, nil
	}

	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && hasManifestExt(e.Name()) {
			paths = append(paths, filepath.Join(p, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no manifests in %v", p)
	}
	return paths, nil
}

// validatePath performs simple checks to verify that a manifest exists.
func validatePath(p string) error {
	if !hasManifestExt(p) {
		return fmt.Errorf("file must have one of the extensions %s", strings.Join(manifestExts, ", "))
	}
	if _, err := os.Stat(p); err != nil {
		return fmt.Errorf("cannot stat file: %w", err)
	}
	return nil
}

func hasManifestExt(p string) bool {
	return slices.Contains(manifestExts, strings.ToLower(filepath.Ext(p)))
}
