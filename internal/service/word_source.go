package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"wordarena/internal/models"
)

// WordPool is the word-storage capability the word source needs
type WordPool interface {
	CountWords() (int, error)
	WordAt(offset int) (*models.Word, error)
	SeedDefaultWords() (int, error)
}

// WordSource supplies a secret word for a new session
type WordSource interface {
	PickWord() (*models.Word, error)
}

// RandomWordSource picks uniformly at random over the full pool. The
// randomness source is injected so tests can make selection deterministic.
type RandomWordSource struct {
	pool WordPool
	rng  *rand.Rand
	mu   sync.Mutex
}

// NewRandomWordSource creates a word source backed by the given pool
func NewRandomWordSource(pool WordPool, rng *rand.Rand) *RandomWordSource {
	return &RandomWordSource{pool: pool, rng: rng}
}

// PickWord returns a random word from the pool. An empty pool is seeded with
// the default word list first, so the game is playable on a fresh install.
func (s *RandomWordSource) PickWord() (*models.Word, error) {
	total, err := s.pool.CountWords()
	if err != nil {
		return nil, fmt.Errorf("failed to count words: %w", err)
	}

	if total == 0 {
		if _, err := s.pool.SeedDefaultWords(); err != nil {
			return nil, fmt.Errorf("failed to seed word pool: %w", err)
		}
		total, err = s.pool.CountWords()
		if err != nil {
			return nil, fmt.Errorf("failed to count words: %w", err)
		}
		if total == 0 {
			return nil, errors.New("word pool is empty after seeding")
		}
	}

	// rand.Rand is not safe for concurrent use
	s.mu.Lock()
	offset := s.rng.Intn(total)
	s.mu.Unlock()

	word, err := s.pool.WordAt(offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select word: %w", err)
	}
	if word == nil {
		return nil, errors.New("word pool shrank during selection")
	}
	return word, nil
}
