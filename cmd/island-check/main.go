// Package main provides the island-check binary: it runs an island
// authoring script in a fresh sandbox session and reports the resulting
// state, exiting non-zero if the script fails.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/isleforge/internal/config"
	"github.com/cory-johannsen/isleforge/internal/observability"
	"github.com/cory-johannsen/isleforge/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	contentDir := flag.String("content", "", "override content.base_dir")
	entryScript := flag.String("script", "", "override content.entry_script (relative to the content dir)")
	flag.Parse()

	var (
		cfg config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.BaseDir = *contentDir
	}
	if *entryScript != "" {
		cfg.Content.EntryScript = *entryScript
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	session := scripting.NewSession(cfg.Content.BaseDir, cfg.Content.ScriptInstructionLimit, logger)
	defer session.Close()

	entry := filepath.Join(cfg.Content.BaseDir, cfg.Content.EntryScript)
	if err := session.RunFile(entry); err != nil {
		logger.Error("authoring script failed", zap.Error(err))
		os.Exit(1)
	}

	report(session)
	fmt.Printf("check complete in %s\n", time.Since(start).Round(time.Millisecond))
}

func report(session *scripting.Session) {
	st := session.State()

	fmt.Printf("tile layers:    %v\n", st.TileLayers())
	fmt.Printf("entity layers:  %v\n", st.EntityLayers())
	fmt.Printf("tile kinds:     %d\n", len(st.TileKinds()))
	fmt.Printf("entity kinds:   %d\n", len(st.EntityKinds()))
	fmt.Printf("rooms:          %d\n", st.RoomCount())
	fmt.Printf("entity spawns:  %d\n", st.SpawnCount())
	fmt.Printf("gltf models:    %d\n", st.GLTFCount())

	data := st.MechanicsData()
	if data == nil {
		fmt.Println("island:         (config not loaded)")
		return
	}

	fmt.Printf("island:         %s (dock room %d)\n", data.Island.Name, data.Island.DockRoomID)
	if data.DockRoom() == nil {
		fmt.Println("warning: dock room is not registered")
		return
	}
	neighbors := 0
	for _, room := range data.Rooms {
		if data.RoomsAreAdjacent(data.Island.DockRoomID, room.RoomID) {
			neighbors++
		}
	}
	fmt.Printf("dock adjacency: %d neighboring room(s)\n", neighbors)
}
