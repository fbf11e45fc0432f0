package utils

import "strings"

const wordsPerMinute = 200

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadingTime estimates minutes to read text, never less than one.
func ReadingTime(text string) int {
	words := WordCount(text)
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}
