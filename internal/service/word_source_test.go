package service

import (
	"math/rand"
	"testing"

	"wordarena/internal/models"
)

func TestPickWordDeterministicWithSeededRand(t *testing.T) {
	pool := &fakeWordPool{words: []models.Word{
		{ID: 1, Text: "APPLE"},
		{ID: 2, Text: "BRAVE"},
		{ID: 3, Text: "CHIEF"},
		{ID: 4, Text: "DELTA"},
	}}

	first := NewRandomWordSource(pool, rand.New(rand.NewSource(42)))
	second := NewRandomWordSource(pool, rand.New(rand.NewSource(42)))

	for i := 0; i < 10; i++ {
		a, err := first.PickWord()
		if err != nil {
			t.Fatalf("PickWord() error = %v", err)
		}
		b, err := second.PickWord()
		if err != nil {
			t.Fatalf("PickWord() error = %v", err)
		}
		if a.Text != b.Text {
			t.Fatalf("pick #%d: same seed diverged, %q vs %q", i, a.Text, b.Text)
		}
	}
}

func TestPickWordSeedsEmptyPool(t *testing.T) {
	pool := &fakeWordPool{}
	source := NewRandomWordSource(pool, rand.New(rand.NewSource(1)))

	word, err := source.PickWord()
	if err != nil {
		t.Fatalf("PickWord() on empty pool error = %v", err)
	}
	if word == nil || word.Text == "" {
		t.Fatal("PickWord() should return a word after auto-seeding")
	}

	count, _ := pool.CountWords()
	if count == 0 {
		t.Error("pool should be seeded after first pick")
	}
}

func TestSeedDefaultWordsIsIdempotent(t *testing.T) {
	pool := &fakeWordPool{}

	added, err := pool.SeedDefaultWords()
	if err != nil {
		t.Fatalf("SeedDefaultWords() error = %v", err)
	}
	if added == 0 {
		t.Fatal("first seed should add words")
	}

	again, err := pool.SeedDefaultWords()
	if err != nil {
		t.Fatalf("second SeedDefaultWords() error = %v", err)
	}
	if again != 0 {
		t.Errorf("second seed added %d words, want 0", again)
	}

	count, _ := pool.CountWords()
	if count != added {
		t.Errorf("pool size = %d, want %d after double seed", count, added)
	}
}
