package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

const settingsVersion = 2

const settingsFile = "goroam-settings.json"

type settings struct {
	Version int

	ServerURL   string
	DisplayName string

	WindowWidth  int
	WindowHeight int

	ShowFPS         bool
	PrecacheAvatars bool
}

var gsdef = settings{
	Version: settingsVersion,

	ServerURL:    "ws://localhost:8080/ws",
	WindowWidth:  1280,
	WindowHeight: 800,

	ShowFPS:         true,
	PrecacheAvatars: true,
}

var gs = gsdef

// loadSettings reads the settings file, falling back to defaults on any
// problem. A stale version is discarded rather than migrated.
func loadSettings() {
	data, err := os.ReadFile(settingsFile)
	if err != nil {
		return
	}
	var s settings
	if err := json.Unmarshal(data, &s); err != nil {
		Log.Warnf("settings unreadable, using defaults: %v", err)
		return
	}
	if s.Version != settingsVersion {
		Log.Infof("settings version %d != %d, using defaults", s.Version, settingsVersion)
		return
	}
	gs = s
}

func saveSettings() {
	gs.Version = settingsVersion
	data, err := json.MarshalIndent(&gs, "", "\t")
	if err != nil {
		Log.Errorf("marshal settings: %v", err)
		return
	}
	if err := os.WriteFile(settingsFile, data, 0644); err != nil {
		Log.Errorf("write settings: %v", err)
	}
}

// defaultDisplayName fills in a name for players who never picked one.
func defaultDisplayName() string {
	return fmt.Sprintf("player-%s", uuid.NewString()[:8])
}
