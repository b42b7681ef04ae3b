package config

import (
	"sync"

	"github.com/gogpu/liquify/edit"
)

var _ edit.RadiusStore = (*Store)(nil)

// Store is a Config bound to a file. An empty path keeps it in memory.
// It is safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	cfg  Config
}

// Open loads the file at path into a new Store.
func Open(path string) (*Store, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}
	return &Store{path: path, cfg: c}, nil
}

// Config returns a copy of the current settings.
func (s *Store) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Radius returns the saved radius or ErrNoRadius.
func (s *Store) Radius() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Liquify.Radius <= 0 {
		return 0, ErrNoRadius
	}
	return s.cfg.Liquify.Radius, nil
}

// SetRadius saves r and writes the file.
func (s *Store) SetRadius(r float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Liquify.Radius = r
	if s.path == "" {
		return nil
	}
	return s.cfg.Save(s.path)
}
