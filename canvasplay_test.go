package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/spezifisch/canvasplay/logger"
	"github.com/spezifisch/canvasplay/mpvplayer"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runMain runs main with args and returns the exit code it asked for, or -1.
func runMain(t *testing.T, args ...string) int {
	t.Helper()

	code := -1
	osExit = func(c int) {
		code = c
	}
	headlessMode = true
	testMode = true

	oldArgs := os.Args
	flag.CommandLine = flag.NewFlagSet("cmd", flag.ContinueOnError)
	viper.Reset()

	// Restore patches after the test
	defer func() {
		osExit = os.Exit
		headlessMode = false
		testMode = false
		os.Args = oldArgs
		viper.Reset()
	}()

	os.Args = append([]string{"cmd"}, args...)
	main()
	return code
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Test initialization of the player
func TestPlayerInitialization(t *testing.T) {
	logger := logger.Init()
	player, err := mpvplayer.NewPlayer(logger, 15)
	assert.NoError(t, err, "Player initialization should not return an error")
	assert.NotNil(t, player, "Player should be initialized")
}

func TestMainHelp(t *testing.T) {
	assert.Equal(t, 0, runMain(t, "--help"))
}

func TestMainVersion(t *testing.T) {
	assert.Equal(t, 0, runMain(t, "--version"))
}

func TestMainMissingConfig(t *testing.T) {
	assert.Equal(t, 2, runMain(t, "--config="+filepath.Join(t.TempDir(), "missing.toml")))
}

func TestMainConfigWithoutCatalog(t *testing.T) {
	config := writeFile(t, "canvasplay.toml", "[render]\nfps = 10\n")
	assert.Equal(t, 2, runMain(t, "--config="+config))
}

func TestMainList(t *testing.T) {
	catalogFile := writeFile(t, "videos.json", `{"videos":[{"id":"a","title":"A","src":"a.mp4"}]}`)
	config := writeFile(t, "canvasplay.toml", "[catalog]\nsource = \""+catalogFile+"\"\n")

	assert.Equal(t, 0, runMain(t, "--config="+config, "--list"))
}

func TestMainListPositionalCatalog(t *testing.T) {
	// the positional argument wins over the config file
	good := writeFile(t, "videos.json", `{"videos":[{"id":"a","title":"A","src":"a.mp4"}]}`)
	config := writeFile(t, "canvasplay.toml", "[catalog]\nsource = \"/does/not/exist.json\"\n")

	assert.Equal(t, 0, runMain(t, "--config="+config, "--list", good))
}

func TestMainListBrokenCatalog(t *testing.T) {
	broken := writeFile(t, "videos.json", `{"videos":[{"id":"","src":"a.mp4"}]}`)
	config := writeFile(t, "canvasplay.toml", "[catalog]\nsource = \""+broken+"\"\n")

	assert.Equal(t, 1, runMain(t, "--config="+config, "--list"))
}

func TestReadConfigDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	config := writeFile(t, "canvasplay.toml", "[catalog]\nsource = \"videos.json\"\n[canvas]\nwidth = 640\n")
	require.NoError(t, readConfig(&config))

	assert.Equal(t, 640, viper.GetInt("canvas.width"))
	assert.Equal(t, defaultCanvasHeight, viper.GetInt("canvas.height"))
	assert.Equal(t, defaultFps, viper.GetInt("render.fps"))
	assert.Equal(t, "none", viper.GetString("render.effect"))
}

func TestReadConfigRejectsCanvasSize(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	config := writeFile(t, "canvasplay.toml", "[catalog]\nsource = \"videos.json\"\n[canvas]\nheight = 0\n")
	assert.Error(t, readConfig(&config))
}
