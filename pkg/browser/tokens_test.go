package browser

import (
	"testing"

	"digital.vasic.browserrunner/pkg/env"

	"github.com/stretchr/testify/assert"
)

func TestParseTokens(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "empty means all simulated",
			value: "",
			want:  []string{"hu", "hu-chrome", "hu-ff", "hu-ff78", "hu-ie"},
		},
		{
			name:  "spaces and case are normalized",
			value: " Chrome , FF78 ",
			want:  []string{"chrome", "ff78"},
		},
		{
			name:  "hu expands alongside native tokens",
			value: "ie,hu",
			want:  []string{"hu", "hu-chrome", "hu-ff", "hu-ff78", "hu-ie", "ie"},
		},
		{
			name:  "empty segments dropped",
			value: "chrome,,hu-ie,",
			want:  []string{"chrome", "hu-ie"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTokens(tt.value).Sorted())
		})
	}
}

func TestParseTokens_HuYieldsFourSimulatedTargets(t *testing.T) {
	got := Targets(ParseTokens("hu"), true)
	assert.Len(t, got, 4)
	for _, tgt := range got {
		assert.False(t, tgt.Native)
	}
}

func TestTokensFrom(t *testing.T) {
	s := TokensFrom(env.MapProperties{PropertyBrowsers: "chrome"})
	assert.True(t, s.Contains("chrome"))
	assert.False(t, s.Contains("hu-chrome"))

	s = TokensFrom(nil)
	assert.True(t, s.Contains("hu-ie"))
}

func TestEnabled_ReadOnce(t *testing.T) {
	first := Enabled()
	env.Default.Set(PropertyBrowsers, "something-else")
	t.Cleanup(func() { env.Default.Set(PropertyBrowsers, "") })
	assert.Equal(t, first, Enabled())
}
