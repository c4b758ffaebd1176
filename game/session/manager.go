package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/battlegrid/game/engine"
	"github.com/wricardo/battlegrid/game/service"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchAlreadyExists = errors.New("match already exists")
	ErrInvalidMatchID     = errors.New("invalid match ID")
)

// Manager handles match lifecycle
type Manager struct {
	matches     map[string]*service.Match
	persistence MatchPersistence
	mu          sync.RWMutex
}

// NewManager creates a new match manager
func NewManager() *Manager {
	return &Manager{
		matches: make(map[string]*service.Match),
	}
}

// NewManagerWithPersistence creates a new match manager with persistence
func NewManagerWithPersistence(persistence MatchPersistence) *Manager {
	return &Manager{
		matches:     make(map[string]*service.Match),
		persistence: persistence,
	}
}

// Create creates a new match with the given ID and configuration
func (m *Manager) Create(id, configName string, config *engine.GameConfig) (*service.Match, error) {
	if id == "" {
		id = m.generateMatchID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check if match already exists (case-insensitive)
	if m.matchExists(id) {
		return nil, ErrMatchAlreadyExists
	}

	match, err := service.NewMatch(id, configName, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	m.matches[strings.ToLower(id)] = match

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(match); err != nil {
			// Log error but don't fail the creation
			fmt.Printf("Warning: Failed to persist match %s: %v\n", id, err)
		}
	}

	return match, nil
}

// Get retrieves a match by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Match, error) {
	m.mu.RLock()
	match, exists := m.matches[strings.ToLower(id)]
	m.mu.RUnlock()

	if exists {
		return match, nil
	}

	// Try loading from persistence if not in memory
	if m.persistence != nil && m.persistence.Exists(id) {
		match, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted match: %w", err)
		}

		// Add to memory cache
		m.mu.Lock()
		m.matches[strings.ToLower(id)] = match
		m.mu.Unlock()

		return match, nil
	}

	return nil, ErrMatchNotFound
}

// List returns all active matches
func (m *Manager) List() []*service.Match {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Match, 0, len(m.matches))
	for _, match := range m.matches {
		result = append(result, match)
	}

	return result
}

// Delete removes a match
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	inMemory := false

	if _, exists := m.matches[lowerID]; exists {
		delete(m.matches, lowerID)
		inMemory = true
	}

	// Delete from persistence if it exists
	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted match: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrMatchNotFound
	}

	return nil
}

// DeleteFromMemory removes a match from memory only (not from persistence)
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.matches[lowerID]; exists {
		delete(m.matches, lowerID)
		return nil
	}

	return ErrMatchNotFound
}

// UpdateLastAccessed updates the last accessed time for a match
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	match, exists := m.matches[strings.ToLower(id)]
	if !exists {
		return ErrMatchNotFound
	}

	match.LastAccessedAt = time.Now()
	return nil
}

// Save saves a specific match to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	match, exists := m.matches[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrMatchNotFound
	}

	return m.persistence.Save(match)
}

// CleanupExpiredMatches removes matches that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredMatches(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, match := range m.matches {
		if match.LastAccessedAt.Before(cutoff) {
			delete(m.matches, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of active matches
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matches)
}

// generateMatchID generates a short random match ID
func (m *Manager) generateMatchID() string {
	// First group of a UUID: 8 hex characters, plenty for a match registry.
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// matchExists checks if a match exists (case-insensitive)
func (m *Manager) matchExists(id string) bool {
	_, exists := m.matches[strings.ToLower(id)]
	return exists
}

// LoadPersistedMatches loads all persisted matches into memory
func (m *Manager) LoadPersistedMatches() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	matchIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted matches: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loadedCount := 0
	for _, id := range matchIDs {
		// Skip if already loaded in memory
		if _, exists := m.matches[strings.ToLower(id)]; exists {
			continue
		}

		match, err := m.persistence.Load(id)
		if err != nil {
			fmt.Printf("Warning: Failed to load persisted match %s: %v\n", id, err)
			continue
		}

		m.matches[strings.ToLower(id)] = match
		loadedCount++
	}

	if loadedCount > 0 {
		fmt.Printf("Loaded %d persisted matches from storage\n", loadedCount)
	}

	return nil
}

// SaveAllMatches saves all in-memory matches to persistence
func (m *Manager) SaveAllMatches() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	matches := make([]*service.Match, 0, len(m.matches))
	for _, match := range m.matches {
		matches = append(matches, match)
	}
	m.mu.RUnlock()

	errorCount := 0
	for _, match := range matches {
		if err := m.persistence.Save(match); err != nil {
			fmt.Printf("Warning: Failed to save match %s: %v\n", match.ID, err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d matches", errorCount)
	}

	return nil
}
