package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/renn8/worldshift/common"
)

func main() {
	levelName := flag.String("level", "", "level name in prefabs/ (basename, .yaml optional)")
	watch := flag.Bool("watch", false, "hot-reload shift tuning from prefabs/ on save")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("worldshift")
	ebiten.SetTPS(common.TickRate)

	game := NewGame(*levelName, *watch, *debug)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
