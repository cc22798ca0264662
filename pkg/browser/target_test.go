package browser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(t []Target) []string {
	out := make([]string, len(t))
	for i, tt := range t {
		out[i] = tt.Token()
	}
	return out
}

func TestTargets(t *testing.T) {
	tests := []struct {
		name   string
		tokens TokenSet
		driver bool
		want   []string
	}{
		{
			name:   "declared order for everything enabled",
			tokens: NewTokenSet("ie", "hu-ie", "ff", "chrome", "hu-ff", "hu-chrome", "hu-ff78", "ff78"),
			driver: true,
			want:   []string{"chrome", "ff78", "ie", "hu-chrome", "hu-ff78", "hu-ff", "hu-ie"},
		},
		{
			name:   "native ff78 suppresses ff",
			tokens: NewTokenSet("ff", "ff78"),
			driver: true,
			want:   []string{"ff78"},
		},
		{
			name:   "native ff alone",
			tokens: NewTokenSet("ff"),
			driver: true,
			want:   []string{"ff"},
		},
		{
			name:   "simulated firefox tokens are independent",
			tokens: NewTokenSet("hu-ff", "hu-ff78"),
			driver: true,
			want:   []string{"hu-ff78", "hu-ff"},
		},
		{
			name:   "native tokens ignored for non-driver classes",
			tokens: NewTokenSet("chrome", "ff", "ie", "hu-ie"),
			driver: false,
			want:   []string{"hu-ie"},
		},
		{
			name:   "unknown tokens are ignored",
			tokens: NewTokenSet("edge", "hu-safari", "chrom"),
			driver: true,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Targets(tt.tokens, tt.driver)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, tokens(got))
		})
	}
}

func TestTarget_Rendering(t *testing.T) {
	assert.Equal(t, "ff78", NativeTarget(Firefox78).Token())
	assert.Equal(t, "FF78", NativeTarget(Firefox78).String())
	assert.Equal(t, "hu-ie", SimulatedTarget(InternetExplorer).Token())
	assert.Equal(t, "hu-IE", SimulatedTarget(InternetExplorer).String())
	assert.Equal(t, "hu-chrome", SimulatedTarget(Chrome).Token())
}

func TestVersion(t *testing.T) {
	assert.Equal(t, FamilyFF78, Firefox78.Family())
	assert.Equal(t, FamilyFF, Firefox78.Parent())
	assert.Equal(t, FamilyFF, Firefox.Parent())
	assert.Equal(t, FamilyChrome, Chrome.Parent())
	assert.True(t, Firefox78.IsFirefox())
	assert.True(t, Firefox.IsFirefox())
	assert.False(t, InternetExplorer.IsFirefox())
	assert.Equal(t, "FF78", Firefox78.String())
}

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily("FF78")
	assert.NoError(t, err)
	assert.Equal(t, FamilyFF78, f)

	_, err = ParseFamily("ff78")
	assert.Error(t, err)

	var decoded Family
	assert.NoError(t, decoded.UnmarshalText([]byte("IE")))
	assert.Equal(t, FamilyIE, decoded)
	assert.Error(t, decoded.UnmarshalText([]byte("EDGE")))
}

func TestParseTarget(t *testing.T) {
	for _, v := range AllVersions {
		for _, want := range []Target{NativeTarget(v), SimulatedTarget(v)} {
			got, err := ParseTarget(want.Token())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}

	got, err := ParseTarget(" HU-FF78 ")
	require.NoError(t, err)
	assert.Equal(t, SimulatedTarget(Firefox78), got)

	_, err = ParseTarget("hu-opera")
	assert.Error(t, err)
}

func TestTarget_TextEncoding(t *testing.T) {
	b, err := json.Marshal(map[string]Target{"t": NativeTarget(InternetExplorer)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"ie"}`, string(b))

	var decoded map[string]Target
	require.NoError(t, json.Unmarshal([]byte(`{"t":"hu-chrome"}`), &decoded))
	assert.Equal(t, SimulatedTarget(Chrome), decoded["t"])

	assert.Error(t, json.Unmarshal([]byte(`{"t":"netscape"}`), &decoded))
}
