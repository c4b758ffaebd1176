package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test_config_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	validConfig := `{
		"name": "Test Config",
		"description": "Test configuration",
		"players": 2,
		"board": {"width": 10, "height": 10},
		"fleet": [
			{"id": "cruiser", "name": "Cruiser", "length": 3},
			{"id": "destroyer", "name": "Destroyer", "length": 2}
		]
	}`

	path := writeTempConfig(t, validConfig)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, `{"name": "test", invalid json}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
	if len(result.Errors) == 0 {
		t.Error("Expected error messages for malformed JSON")
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig("/nonexistent/path/config.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}

func TestValidateConfig_ShipTooLong(t *testing.T) {
	config := `{
		"name": "Oversized",
		"description": "Ship longer than the board",
		"players": 2,
		"board": {"width": 4, "height": 4},
		"fleet": [
			{"id": "leviathan", "name": "Leviathan", "length": 6}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for ship longer than both board axes")
	}

	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "does not fit") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a does-not-fit error, got: %v", result.Errors)
	}
}

func TestValidateConfig_ShipFitsViaWrap(t *testing.T) {
	config := `{
		"name": "Wrapped",
		"description": "Ship that only fits along the wrapping axis",
		"players": 2,
		"board": {"width": 4, "height": 4, "wrap_x": true},
		"fleet": [
			{"id": "long", "name": "Long One", "length": 4}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config on wrapping board, got errors: %v", result.Errors)
	}
}

func TestValidateConfig_DuplicateShipID(t *testing.T) {
	config := `{
		"name": "Dupes",
		"description": "Two ships with the same id",
		"players": 2,
		"board": {"width": 10, "height": 10},
		"fleet": [
			{"id": "cruiser", "name": "Cruiser A", "length": 3},
			{"id": "cruiser", "name": "Cruiser B", "length": 3}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for duplicate ship IDs")
	}
}

func TestValidateConfig_TooManyPlayers(t *testing.T) {
	config := `{
		"name": "Crowd",
		"description": "Too many players",
		"players": 20,
		"board": {"width": 10, "height": 10},
		"fleet": [
			{"id": "destroyer", "name": "Destroyer", "length": 2}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for player count above limit")
	}
}

func TestValidateConfig_FleetTooDense(t *testing.T) {
	// 18 of 25 cells covered, no overlap: packing is hopeless
	config := `{
		"name": "Packed",
		"description": "Hopelessly dense fleet",
		"players": 2,
		"board": {"width": 5, "height": 5},
		"fleet": [
			{"id": "a", "name": "A", "length": 5},
			{"id": "b", "name": "B", "length": 5},
			{"id": "c", "name": "C", "length": 4},
			{"id": "d", "name": "D", "length": 4}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if result.Valid {
		t.Errorf("Expected invalid result for over-dense fleet, got: %v", result.Errors)
	}

	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "too dense") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a density error, got: %v", result.Errors)
	}
}

func TestValidateConfig_DenseFleetWarning(t *testing.T) {
	// 8 of 25 cells (32% effective without no_touching): warn but accept
	config := `{
		"name": "Snug",
		"description": "Dense but placeable fleet",
		"players": 2,
		"board": {"width": 5, "height": 5},
		"fleet": [
			{"id": "a", "name": "A", "length": 3},
			{"id": "b", "name": "B", "length": 3},
			{"id": "c", "name": "C", "length": 2}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, got errors: %v", result.Errors)
	}

	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "Warning: dense fleet") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a density warning, got: %v", result.Errors)
	}
}

func TestValidateConfig_OverlapAlwaysPlaceable(t *testing.T) {
	config := `{
		"name": "Pile",
		"description": "Overlap makes any fleet placeable",
		"players": 2,
		"board": {"width": 5, "height": 5},
		"rules": {"allow_overlap": true},
		"fleet": [
			{"id": "a", "name": "A", "length": 5},
			{"id": "b", "name": "B", "length": 5},
			{"id": "c", "name": "C", "length": 5},
			{"id": "d", "name": "D", "length": 5}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if !result.Valid {
		t.Errorf("Expected valid config with overlap allowed, got errors: %v", result.Errors)
	}
}

func TestValidateConfig_DuplicateDisplayNameWarns(t *testing.T) {
	config := `{
		"name": "Twins",
		"description": "Two ships with the same display name",
		"players": 2,
		"board": {"width": 10, "height": 10},
		"fleet": [
			{"id": "sub1", "name": "Submarine", "length": 3},
			{"id": "sub2", "name": "Submarine", "length": 3}
		]
	}`

	path := writeTempConfig(t, config)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, got errors: %v", result.Errors)
	}

	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "share display name") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a display-name warning, got: %v", result.Errors)
	}
}

func TestValidateConfig_RealConfigs(t *testing.T) {
	files, err := filepath.Glob("../configs/*.json")
	if err != nil {
		t.Fatalf("Failed to glob configs: %v", err)
	}
	if len(files) == 0 {
		t.Skip("No config files found")
	}

	for _, file := range files {
		result := validateConfig(file)
		if !result.Valid {
			t.Errorf("Config %s is invalid: %v", result.File, result.Errors)
		}
	}
}
