package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 0.0, Average([]int{}))
	assert.Equal(t, 9.0, Average([]int{8, 9, 10}))
	assert.InDelta(t, 6.333, Average([]int{5, 7, 7}), 0.001)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		scores   []int
		contains string
	}{
		{
			name:     "empty scores fall to lowest tier",
			scores:   []int{},
			contains: "Your average score is 0.0/10. Focus on practicing",
		},
		{
			name:     "high average gets top tier",
			scores:   []int{8, 9, 10},
			contains: "Excellent performance! Your average score is 9.0/10.",
		},
		{
			name:     "mid average gets middle tier",
			scores:   []int{5, 6, 7},
			contains: "Good job. Your average score is 6.0/10.",
		},
		{
			name:     "boundary 8.0 belongs to top tier",
			scores:   []int{8, 8, 8},
			contains: "Excellent performance!",
		},
		{
			name:     "boundary 6.0 belongs to middle tier",
			scores:   []int{6, 6, 6},
			contains: "Good job.",
		},
		{
			name:     "just below 6 falls to lowest tier",
			scores:   []int{5, 6, 6},
			contains: "Focus on practicing your communication and domain knowledge.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Summarize(tt.scores), tt.contains)
		})
	}
}
