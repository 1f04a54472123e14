// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"time"

	"github.com/spezifisch/canvasplay/catalog"
	"github.com/spezifisch/canvasplay/controls"
	"github.com/spezifisch/canvasplay/effects"
	"github.com/spezifisch/canvasplay/logger"
	"github.com/spezifisch/canvasplay/mpvplayer"
	"github.com/spezifisch/canvasplay/playlist"
	"github.com/spezifisch/canvasplay/prefs"
	"github.com/spezifisch/canvasplay/remote"
	tviewcommand "github.com/spezifisch/tview-command"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var osExit = os.Exit  // A variable to allow mocking os.Exit in tests
var headlessMode bool // This can be set to true during tests
var testMode bool     // This can be set to true during tests, too

const DEVELOPMENT = "development"

// Name is the program name shown in the ui
var Name string = "canvasplay"

// Version is the program version; usually set from BuildInfo
var Version string = DEVELOPMENT

const (
	defaultCanvasWidth  = 960
	defaultCanvasHeight = 540

	catalogFetchTimeout = 30 * time.Second
)

func setConfigDefaults() {
	viper.SetDefault("canvas.width", defaultCanvasWidth)
	viper.SetDefault("canvas.height", defaultCanvasHeight)
	viper.SetDefault("render.fps", defaultFps)
	viper.SetDefault("render.effect", effects.None.String())
}

func readConfig(configFile *string) error {
	required_properties := []string{"catalog.source"}

	setConfigDefaults()

	explicit := configFile != nil && *configFile != ""
	if explicit {
		// use custom config file
		viper.SetConfigFile(*configFile)
	} else {
		// lookup default dirs
		viper.SetConfigName("canvasplay")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/canvasplay")
		viper.AddConfigPath(".")
	}

	// read it; without a config file a catalog given on the command line is enough
	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (explicit || !errors.As(err, &notFound)) {
		return fmt.Errorf("Config file error: %s\n", err)
	}

	// validate
	for _, prop := range required_properties {
		if !viper.IsSet(prop) || viper.GetString(prop) == "" {
			return fmt.Errorf("Config property %s is required\n", prop)
		}
	}

	if w, h := viper.GetInt("canvas.width"), viper.GetInt("canvas.height"); w <= 0 || h <= 0 {
		return fmt.Errorf("Config canvas size %dx%d is invalid\n", w, h)
	}

	return nil
}

// parseConfig takes the first non-flag argument as the catalog location.
func parseConfig() {
	viper.Set("catalog.source", flag.Arg(0))
}

// initCommandHandler sets up tview-command and loads the optional
// keybinding file. A nil config means the built-in bindings.
func initCommandHandler(logger *logger.Logger) *tviewcommand.Config {
	tviewcommand.SetLogHandler(func(msg string) {
		logger.Print(msg)
	})

	configPath := viper.GetString("keybindings.file")
	if configPath == "" {
		return nil
	}

	// Load the configuration file
	config, err := tviewcommand.LoadConfig(configPath)
	if err != nil || config == nil {
		logger.PrintError("Failed to load command-shortcut config", err)
		return nil
	}
	logger.Printf("loaded command-shortcut config %s", configPath)
	return config
}

func loadIcons(logger *logger.Logger) controls.Icons {
	on, off := viper.GetString("icons.speaker-on"), viper.GetString("icons.speaker-off")
	if on == "" || off == "" {
		return controls.DefaultIcons()
	}
	icons, err := controls.LoadIcons(on, off)
	if err != nil {
		logger.PrintError("loadIcons", err)
		return controls.DefaultIcons()
	}
	return icons
}

func fetchCatalog(source *catalog.Source, location string) ([]playlist.VideoEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), catalogFetchTimeout)
	defer cancel()
	return source.Fetch(ctx, location)
}

func printCatalog(location string, entries []playlist.VideoEntry) {
	fmt.Printf("%-12s: %s\n", "Catalog", location)
	fmt.Printf("%-12s: %d\n", "Videos", len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("  %-20s %s", e.Id, e.GetTitle())
		if e.Subtitle != "" {
			line += " (" + e.Subtitle + ")"
		}
		fmt.Println(line)
		fmt.Printf("  %-20s %s\n", "", e.Src)
	}
}

// return codes:
// 0 - OK
// 1 - generic errors
// 2 - main config errors
func main() {
	// parse flags and config
	help := flag.Bool("help", false, "Print usage")
	enableMpris := flag.Bool("mpris", false, "Enable MPRIS2")
	list := flag.Bool("list", false, "list the catalog and exit")
	effect := flag.String("effect", "", "start with `effect` (none, invert, glitch, colorBoost, blur)")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	configFile := flag.String("config", "", "use config `file`")
	version := flag.Bool("version", false, "print the canvasplay version and exit")

	flag.Parse()
	if *help {
		fmt.Printf("USAGE: %s <args> [catalog file or URL]\n", os.Args[0])
		flag.Usage()
		osExit(0)
		return
	}
	if Version == DEVELOPMENT {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
			Version = bi.Main.Version
		}
	}
	if *version {
		fmt.Printf("canvasplay %s\n", Version)
		osExit(0)
		return
	}

	// cpu/memprofile code straight from https://pkg.go.dev/runtime/pprof
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	// config gathering
	if len(flag.Args()) > 0 {
		parseConfig()
	}

	if err := readConfig(configFile); err != nil {
		if configFile == nil {
			fmt.Fprintf(os.Stderr, "Failed to read configuration: configuration file is nil\n")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read configuration from file '%s': %v\n", *configFile, err)
		}
		osExit(2)
		return
	}
	if *effect != "" {
		viper.Set("render.effect", *effect)
	}

	logger := logger.Init()
	if logFile := viper.GetString("log.file"); logFile != "" {
		if err := logger.AttachFile(logFile); err != nil {
			fmt.Fprintf(os.Stderr, "Unable to open log file: %s\n", err)
		}
	}
	defer logger.Close()
	keybindings := initCommandHandler(logger)

	// the catalog is fetched once; a failure is shown in the ui
	source := catalog.NewSource()
	location := viper.GetString("catalog.source")
	entries, err := fetchCatalog(source, location)
	if *list {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching catalog: %s\n", err)
			osExit(1)
			return
		}
		printCatalog(location, entries)
		osExit(0)
		return
	}
	startupNotice := ""
	if err != nil {
		logger.PrintError("fetch catalog", err)
		startupNotice = "Could not load the playlist:\n" + err.Error()
	}

	// init mpv engine
	fps := viper.GetInt("render.fps")
	player, err := mpvplayer.NewPlayer(logger, fps)
	if err != nil {
		fmt.Println("Unable to initialize mpv. Is mpv installed?")
		osExit(1)
		return
	}

	if testMode {
		fmt.Println("Running in test mode for testing.")
		osExit(0x23420001)
		return
	}

	// previews are optional
	preview, err := mpvplayer.NewPreviewGrabber()
	if err != nil {
		logger.PrintError("preview grabber", err)
		preview = nil
	}

	if headlessMode {
		fmt.Println("Running in headless mode for testing.")
		osExit(0)
		return
	}

	statePath := viper.GetString("state.file")
	if statePath == "" {
		statePath = prefs.DefaultPath()
	}

	ui := InitGui(guiConfig{
		CanvasWidth:     viper.GetInt("canvas.width"),
		CanvasHeight:    viper.GetInt("canvas.height"),
		Fps:             fps,
		Effect:          effects.ParseKind(viper.GetString("render.effect")),
		Icons:           loadIcons(logger),
		CatalogLocation: location,
		Entries:         entries,
		StartupNotice:   startupNotice,
		Keybindings:     keybindings,
	}, player, preview, source, prefs.NewStore(afero.NewOsFs(), statePath), logger)

	// init mpris2 player control (linux only but fails gracefully on other systems)
	if *enableMpris {
		mprisPlayer, err := remote.RegisterMprisPlayer(ui.RemoteControl(), player.Duration, logger)
		if err != nil {
			fmt.Printf("Unable to register MPRIS with DBUS: %s\n", err)
			fmt.Println("Try running without MPRIS")
			osExit(1)
			return
		}
		defer mprisPlayer.Close()
		ui.AttachMpris(mprisPlayer)
	}

	// run main loop
	if err := ui.Run(); err != nil {
		panic(err)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		runtime.GC()    // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
