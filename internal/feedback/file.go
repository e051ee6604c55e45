package feedback

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type fileState struct {
	Entries []Entry        `json:"entries"`
	Stats   map[string]int `json:"stats"`
}

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		if s.path == "" {
			return
		}
		data, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var st fileState
		if err := json.Unmarshal(data, &st); err != nil {
			return
		}
		s.mu.Lock()
		s.entries = st.Entries
		if st.Stats != nil {
			s.stats = st.Stats
		}
		s.mu.Unlock()
	})
}

// saveFile persists the whole state; callers hold no lock.
func (s *Store) saveFile() error {
	if s.path == "" {
		return nil
	}
	s.mu.RLock()
	st := fileState{Entries: s.entries, Stats: s.stats}
	data, err := json.MarshalIndent(st, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *Store) putFile(e Entry) error {
	s.ensureLoadedFile()
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
	return s.saveFile()
}

func (s *Store) bumpPathsFile(paths []string) error {
	s.ensureLoadedFile()
	s.mu.Lock()
	for _, p := range paths {
		s.stats[p]++
	}
	s.mu.Unlock()
	return s.saveFile()
}

func (s *Store) pathUsesFile(path string) int {
	s.ensureLoadedFile()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats[path]
}

func (s *Store) allFile() []Entry {
	s.ensureLoadedFile()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
