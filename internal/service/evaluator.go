package service

import "wordarena/internal/models"

// EvaluateGuess computes per-letter feedback for a guess against a target.
// Both inputs must be normalized, equal-length uppercase words.
//
// Two passes: exact-position matches first, each consuming one occurrence of
// the letter from the target's remaining pool; then displaced letters, each
// consuming from whatever the first pass left. A letter the target holds N
// times can therefore earn at most N Correct/Present marks, left to right,
// with exact matches taking priority.
func EvaluateGuess(target, guess string) []models.Mark {
	marks := make([]models.Mark, len(guess))
	remaining := make(map[byte]int, len(target))

	for i := 0; i < len(guess); i++ {
		if guess[i] == target[i] {
			marks[i] = models.MarkCorrect
		} else {
			remaining[target[i]]++
		}
	}

	for i := 0; i < len(guess); i++ {
		if marks[i] == models.MarkCorrect {
			continue
		}
		if remaining[guess[i]] > 0 {
			marks[i] = models.MarkPresent
			remaining[guess[i]]--
		} else {
			marks[i] = models.MarkAbsent
		}
	}

	return marks
}
