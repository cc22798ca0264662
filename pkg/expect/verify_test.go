package expect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyAlerts(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
		actual   []string
		errMsg   string
	}{
		{name: "both empty", expected: []string{}, actual: nil},
		{name: "equal", expected: []string{"a", "b"}, actual: []string{"a", "b"}},
		{
			name:     "missing alert",
			expected: []string{"a", "b"},
			actual:   []string{"a"},
			errMsg:   `expected 2 alerts ["a" "b"], got 1 ["a"]`,
		},
		{
			name:     "unexpected alert",
			expected: []string{},
			actual:   []string{"surprise"},
			errMsg:   `expected 0 alerts [], got 1 ["surprise"]`,
		},
		{
			name:     "order matters",
			expected: []string{"a", "b"},
			actual:   []string{"b", "a"},
			errMsg:   `alert 0: expected "a", got "b"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyAlerts(tt.expected, tt.actual)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrAlertsMismatch)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
