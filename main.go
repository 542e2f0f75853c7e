package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/featherfall/common"
	"github.com/milk9111/featherfall/logging"
)

func main() {
	levelName := flag.String("level", "hollow.json", "level file in levels/ (.json optional)")
	debug := flag.Bool("debug", false, "start with the debug overlay on (toggle with F1)")
	watch := flag.Bool("watch", true, "reload prefabs when they change on disk")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	logFormat := flag.String("log-format", "console", "console, text or json")
	noColor := flag.Bool("no-color", false, "disable coloured console logs")
	flag.Parse()

	log := logging.Init(logging.Options{Level: *logLevel, Format: *logFormat, NoColor: *noColor})

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth*2, common.BaseHeight*2)
	ebiten.SetWindowTitle("featherfall")
	ebiten.SetTPS(common.TicksPerSecond)

	game, err := NewGame(Options{Level: *levelName, Debug: *debug, Watch: *watch})
	if err != nil {
		log.Error("start", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Error("run", "err", err)
		os.Exit(1)
	}
}
