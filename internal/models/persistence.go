package models

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var SaveDir = ".saves"

// SaveGame is everything a save slot holds: player progress plus, when a
// puzzle was in flight, the suspended session.
type SaveGame struct {
	Progress ProgressionState
	Session  *SessionRecord
}

// Save writes the slot as per-concern yaml files under SaveDir/name.
func (g *SaveGame) Save(name string) error {
	dir := filepath.Join(SaveDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	progressData, err := yaml.Marshal(g.Progress)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "progress.yaml"), progressData, 0644); err != nil {
		return err
	}

	sessionPath := filepath.Join(dir, "session.yaml")
	if g.Session == nil {
		// A finished puzzle leaves no session behind.
		if err := os.Remove(sessionPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	sessionData, err := yaml.Marshal(g.Session)
	if err != nil {
		return err
	}
	return os.WriteFile(sessionPath, sessionData, 0644)
}

// LoadSave reads a slot back. A missing session.yaml means no puzzle was in
// flight when the slot was written.
func LoadSave(name string) (*SaveGame, error) {
	dir := filepath.Join(SaveDir, name)

	progressData, err := os.ReadFile(filepath.Join(dir, "progress.yaml"))
	if err != nil {
		return nil, err
	}
	var progress ProgressionState
	if err := yaml.Unmarshal(progressData, &progress); err != nil {
		return nil, err
	}
	if progress.Unlocked == nil {
		progress.Unlocked = NewProgressionState().Unlocked
	}

	game := &SaveGame{Progress: progress}

	sessionData, err := os.ReadFile(filepath.Join(dir, "session.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return game, nil
		}
		return nil, err
	}
	var record SessionRecord
	if err := yaml.Unmarshal(sessionData, &record); err != nil {
		return nil, err
	}
	game.Session = &record
	return game, nil
}

// ListSaves returns the names of valid save slots.
func ListSaves() ([]string, error) {
	if _, err := os.Stat(SaveDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(SaveDir)
	if err != nil {
		return nil, err
	}

	var saves []string
	for _, entry := range entries {
		if entry.IsDir() {
			// progress.yaml marks a valid slot
			progressPath := filepath.Join(SaveDir, entry.Name(), "progress.yaml")
			if _, err := os.Stat(progressPath); err == nil {
				saves = append(saves, entry.Name())
			}
		}
	}
	return saves, nil
}
