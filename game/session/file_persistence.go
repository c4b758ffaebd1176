package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/battlegrid/game/service"
)

// FilePersistence implements MatchPersistence using file system storage.
// A match file holds the configuration and the move log; loading rebuilds
// the game by replaying the log.
type FilePersistence struct {
	matchesDir string
}

// NewFilePersistence creates a new file-based match persistence layer
func NewFilePersistence(matchesDir string) (*FilePersistence, error) {
	// Create matches directory if it doesn't exist
	if err := os.MkdirAll(matchesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create matches directory: %w", err)
	}

	return &FilePersistence{
		matchesDir: matchesDir,
	}, nil
}

// Save persists a match to a JSON file
func (fp *FilePersistence) Save(match *service.Match) error {
	if match == nil {
		return fmt.Errorf("match cannot be nil")
	}

	data := PersistedMatchData{
		ID:             match.ID,
		ConfigName:     match.ConfigName,
		Config:         match.Config,
		CreatedAt:      match.CreatedAt,
		LastAccessedAt: match.LastAccessedAt,
		Moves:          match.Moves,
	}

	// Marshal to JSON with indentation for readability
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match data: %w", err)
	}

	filePath := fp.getFilePath(match.ID)
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write match file: %w", err)
	}

	return nil
}

// Load retrieves a match from a JSON file and replays its move log
func (fp *FilePersistence) Load(id string) (*service.Match, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrMatchNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read match file: %w", err)
	}

	var data PersistedMatchData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match data: %w", err)
	}
	if data.Config == nil {
		return nil, fmt.Errorf("match file %s has no configuration", filePath)
	}

	// Rebuild the game and replay the recorded moves against it.
	match, err := service.NewMatch(data.ID, data.ConfigName, data.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild match: %w", err)
	}
	if err := match.Replay(data.Moves); err != nil {
		return nil, fmt.Errorf("failed to replay match %s: %w", id, err)
	}

	match.CreatedAt = data.CreatedAt
	match.LastAccessedAt = data.LastAccessedAt

	return match, nil
}

// Delete removes a match file
func (fp *FilePersistence) Delete(id string) error {
	filePath := fp.getFilePath(id)

	if !fp.Exists(id) {
		return ErrMatchNotFound
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to remove match file: %w", err)
	}

	return nil
}

// ListAll returns all persisted match IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.matchesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read matches directory: %w", err)
	}

	var matchIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			// Remove .json extension to get match ID
			matchIDs = append(matchIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return matchIDs, nil
}

// Exists checks if a match file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a match ID
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.matchesDir, fmt.Sprintf("%s.json", id))
}
