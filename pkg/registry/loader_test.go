package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"digital.vasic.browserrunner/pkg/browser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlBank = `version: "1.0"
classes:
  - name: DocumentTest
    methods:
      - name: title
        alerts:
          default: [Hello]
          ie: []
        standards_mode: true
        alerts_standards:
          ff: [std]
      - name: cookie
        not_yet_implemented:
          browsers: [IE, FF78]
          reason: cookie jar
        buggy_web_driver:
          browsers: [CHROME]
        tries: 3
        timeout: 45s
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadExpectationsFromFile_YAML(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newClass("DocumentTest", "title", "cookie")))

	p := writeFile(t, t.TempDir(), "bank.yaml", yamlBank)
	require.NoError(t, LoadExpectationsFromFile(r, p))

	title, err := r.Method("DocumentTest", "title")
	require.NoError(t, err)
	assert.True(t, title.StandardsMode)
	assert.Equal(t, []string{"Hello"}, title.Alerts.Resolve(browser.Chrome))
	assert.Equal(t, []string{}, title.Alerts.Resolve(browser.InternetExplorer))
	assert.Equal(t, []string{"std"}, title.AlertsStandards.Resolve(browser.Firefox78))

	cookie, err := r.Method("DocumentTest", "cookie")
	require.NoError(t, err)
	assert.Equal(t, "cookie jar", cookie.NotYetImplemented.Reason)
	assert.True(t, cookie.NotYetImplemented.Covers(browser.Firefox78))
	assert.False(t, cookie.NotYetImplemented.Covers(browser.Firefox))
	assert.True(t, cookie.BuggyWebDriver.Covers(browser.Chrome))
	assert.Equal(t, 3, cookie.Tries.Count())
	assert.Equal(t, 45*time.Second, cookie.Timeout)
}

func TestLoadExpectationsFromFile_JSON(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newClass("DocumentTest", "title")))

	content := `{
		"version": "1.0",
		"classes": [
			{
				"name": "DocumentTest",
				"methods": [
					{"name": "title", "alerts": {"value": ["a"], "ff78": ["b"]}, "tries": 2}
				]
			}
		]
	}`
	p := writeFile(t, t.TempDir(), "bank.json", content)
	require.NoError(t, LoadExpectationsFromFile(r, p))

	m, err := r.Method("DocumentTest", "title")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, m.Alerts.Resolve(browser.Firefox78))
	assert.Equal(t, []string{"a"}, m.Alerts.Resolve(browser.Firefox))
	assert.Equal(t, 2, m.Tries.Count())
	assert.False(t, m.StandardsMode)
}

func TestLoadExpectationsFromFile_AbsentKeysKeepValues(t *testing.T) {
	r := NewRegistry()
	c := newClass("C", "m")
	c.Methods[0].Tries = 5
	c.Methods[0].StandardsMode = true
	require.NoError(t, r.Register(c))

	p := writeFile(t, t.TempDir(), "bank.yml", "classes:\n  - name: C\n    methods:\n      - name: m\n")
	require.NoError(t, LoadExpectationsFromFile(r, p))
	assert.Equal(t, 5, c.Methods[0].Tries.Count())
	assert.True(t, c.Methods[0].StandardsMode)
}

func TestLoadExpectationsFromFile_UnknownTargets(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newClass("C", "m", "n")))

	content := `classes:
  - name: C
    methods:
      - name: missing
        tries: 2
      - name: m
        tries: 3
      - name: n
        timeout: soon
  - name: Other
    methods:
      - name: m
`
	p := writeFile(t, t.TempDir(), "bank.yaml", content)
	err := LoadExpectationsFromFile(r, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMethodNotFound)
	assert.ErrorIs(t, err, ErrClassNotFound)
	assert.Contains(t, err.Error(), "invalid timeout")

	// Valid records are still applied.
	m, _ := r.Method("C", "m")
	assert.Equal(t, 3, m.Tries.Count())
}

func TestLoadExpectationsFromFile_BadFamily(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newClass("C", "m")))

	content := "classes:\n  - name: C\n    methods:\n      - name: m\n        not_yet_implemented:\n          browsers: [NETSCAPE]\n"
	p := writeFile(t, t.TempDir(), "bank.yaml", content)
	err := LoadExpectationsFromFile(r, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadExpectationsFromFile_NotFound(t *testing.T) {
	err := LoadExpectationsFromFile(NewRegistry(), "/nonexistent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadExpectationsFromFile_InvalidJSON(t *testing.T) {
	p := writeFile(t, t.TempDir(), "bank.json", "{not json")
	err := LoadExpectationsFromFile(NewRegistry(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadExpectationsFromDir(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newClass("DocumentTest", "title", "cookie")))

	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", yamlBank)
	writeFile(t, dir, "b.json", `{"classes":[{"name":"DocumentTest","methods":[{"name":"title","tries":7}]}]}`)
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	require.NoError(t, LoadExpectationsFromDir(r, dir))
	m, err := r.Method("DocumentTest", "title")
	require.NoError(t, err)
	assert.Equal(t, 7, m.Tries.Count())
}

func TestLoadExpectationsFromDir_NotFound(t *testing.T) {
	err := LoadExpectationsFromDir(NewRegistry(), "/nonexistent/dir")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read directory")
}

func TestBank_Classes(t *testing.T) {
	bank, err := ReadBank(writeFile(t, t.TempDir(), "bank.yaml", yamlBank))
	require.NoError(t, err)
	assert.Equal(t, "1.0", bank.Version)

	classes, err := bank.Classes()
	require.NoError(t, err)
	require.Len(t, classes, 1)

	c := classes[0]
	assert.Equal(t, "DocumentTest", c.Name)
	assert.False(t, c.HasTestMethods())
	require.Len(t, c.Methods, 2)
	assert.True(t, c.Method("title").StandardsMode)
	assert.Equal(t, 45*time.Second, c.Method("cookie").Timeout)
}

func TestBank_Classes_InvalidTimeout(t *testing.T) {
	bank, err := ReadBank(writeFile(t, t.TempDir(), "bank.yaml",
		"classes:\n  - name: C\n    methods:\n      - name: m\n        timeout: later\n      - name: n\n"))
	require.NoError(t, err)

	classes, err := bank.Classes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "C.m: invalid timeout")
	require.Len(t, classes, 1)
	assert.Len(t, classes[0].Methods, 1)
}
