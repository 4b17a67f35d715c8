package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		canonical string
		want      bool
	}{
		{"exact match", "mitochondria", "mitochondria", true},
		{"case insensitive", "Paris", "paris", true},
		{"surrounding whitespace", "  42  ", "42", true},
		{"whitespace on canonical side", "osmosis", " Osmosis ", true},
		{"wrong answer", "4", "5", false},
		{"wording differs", "four", "4", false},
		{"empty submission", "", "anything", false},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnswersMatch(tt.submitted, tt.canonical))
		})
	}
}

func TestAccuracyPercentage(t *testing.T) {
	tests := []struct {
		name      string
		correct   int
		attempted int
		want      int
	}{
		{"nothing attempted", 0, 0, 0},
		{"all correct", 10, 10, 100},
		{"all wrong", 0, 10, 0},
		{"simple percentage", 7, 10, 70},
		{"rounds down", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"half rounds up", 1, 8, 13},
		{"negative attempted guarded", 3, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AccuracyPercentage(tt.correct, tt.attempted))
		})
	}
}
