package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"wingsync/internal/models"
)

// LinkFile keeps all links in memory and rewrites the whole snapshot file on
// every mutation. Loading happens once at construction; a failed write leaves
// the in-memory state mutated and the on-disk copy stale.
type LinkFile struct {
	mu    sync.RWMutex
	path  string
	links map[string]models.Link // keyed by uuid
}

func NewLinkFile(path string) (*LinkFile, error) {
	s := &LinkFile{
		path:  path,
		links: make(map[string]models.Link),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LinkFile) Path() string {
	return s.path
}

func (s *LinkFile) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read link file: %w", err)
	}

	var loaded map[string]models.Link
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse link file: %w", err)
	}
	if loaded != nil {
		s.links = loaded
	}
	return nil
}

// persist writes the snapshot through a temp file and rename so a failed
// write never leaves a truncated file behind. Callers hold the write lock.
func (s *LinkFile) persist() error {
	data, err := json.MarshalIndent(s.links, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

func (s *LinkFile) Upsert(link models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	link.LinkedAt = time.Now()
	s.links[link.UUID] = link
	return s.persist()
}

func (s *LinkFile) RemoveByUUID(uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[uuid]; !ok {
		return nil
	}
	delete(s.links, uuid)
	return s.persist()
}

func (s *LinkFile) RemoveByName(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for uuid, link := range s.links {
		if strings.EqualFold(link.Username, username) {
			delete(s.links, uuid)
			return s.persist()
		}
	}
	return nil
}

func (s *LinkFile) FindByDiscordID(discordID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var usernames []string
	for _, link := range s.links {
		if link.DiscordID == discordID {
			usernames = append(usernames, link.Username)
		}
	}
	sort.Strings(usernames)
	return usernames, nil
}

func (s *LinkFile) FindDiscordNameByUsername(username string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, link := range s.links {
		if strings.EqualFold(link.Username, username) {
			return link.DiscordName, nil
		}
	}
	return "", ErrNotFound
}

func (s *LinkFile) FindDiscordIDByUUID(uuid string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[uuid]
	if !ok {
		return "", ErrNotFound
	}
	return link.DiscordID, nil
}

func (s *LinkFile) All() ([]models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := make([]models.Link, 0, len(s.links))
	for _, link := range s.links {
		links = append(links, link)
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Username < links[j].Username })
	return links, nil
}

func (s *LinkFile) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links), nil
}

func (s *LinkFile) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}
