package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/sortable-tree/internal/model"
	"github.com/pstuifzand/sortable-tree/internal/printer"
	"github.com/pstuifzand/sortable-tree/internal/storage"
	"github.com/pstuifzand/sortable-tree/internal/tree"
)

const sampleText = `Home
Collections
  Spring
  Summer
  Fall
  Winter
About Us
My Account
  Addresses
  Order History
`

// run executes the command line with a config path that does not exist, so
// the defaults apply.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := New()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.toml")))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestShow(t *testing.T) {
	out, _, err := run(t, "show", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, sampleText, out)
}

func TestShowSeedFile(t *testing.T) {
	path := writeSeed(t, "menu.md", "- A\n  - A1\n- B\n")

	out, _, err := run(t, "show", path, "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "A\n  A1\nB\n", out)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, _, err := run(t, "show", "-o", "xml")
	assert.ErrorContains(t, err, "unsupported output format: xml")
}

func TestFlatten(t *testing.T) {
	out, _, err := run(t, "flatten", "-o", "json")
	require.NoError(t, err)

	var flat []model.FlattenedItem
	require.NoError(t, json.Unmarshal([]byte(out), &flat))
	require.Len(t, flat, 10)
	assert.Equal(t, "Spring", flat[2].ID)
	assert.Equal(t, "Collections", flat[2].ParentID)
	assert.Equal(t, 1, flat[2].Depth)
	assert.Equal(t, 0, flat[2].Index)
	assert.Equal(t, "My Account", flat[7].ID)
	assert.Equal(t, 3, flat[7].Index)
}

func TestFlattenVisible(t *testing.T) {
	path := writeSeed(t, "seed.yaml", `items:
  - id: A
    collapsed: true
    children:
      - id: A1
  - id: B
`)

	out, _, err := run(t, "flatten", path, "--visible", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "A\t\t0\t0\nB\t\t0\t1\n", out)

	out, _, err = run(t, "flatten", path, "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "A\t\t0\t0\nA1\tA\t1\t0\nB\t\t0\t1\n", out)
}

func TestProject(t *testing.T) {
	out, _, err := run(t, "project", "--active", "About Us", "--over", "Winter", "--offset", "50", "-o", "json")
	require.NoError(t, err)

	var result printer.ProjectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, model.Projection{Depth: 1, MinDepth: 1, MaxDepth: 2, ParentID: "Collections"}, result.Projection)
	assert.Equal(t, "About Us was moved after Fall.", result.Announcement)
}

func TestProjectIndentationFlag(t *testing.T) {
	out, _, err := run(t, "project", "--active", "About Us", "--over", "Winter", "--offset", "50",
		"--indentation", "20", "-o", "json")
	require.NoError(t, err)

	var result printer.ProjectionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	// 50/20 rounds to 3 levels, clamped to the maximum
	assert.Equal(t, 2, result.Projection.Depth)
	assert.Equal(t, "Fall", result.Projection.ParentID)
}

func TestProjectUnknownItem(t *testing.T) {
	_, _, err := run(t, "project", "--active", "About Us", "--over", "Wintr")
	require.Error(t, err)

	var nf tree.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Wintr", nf.ID)
	assert.Contains(t, err.Error(), `did you mean "Winter"?`)
}

func TestProjectRequiresActive(t *testing.T) {
	_, _, err := run(t, "project", "--over", "Home")
	assert.ErrorContains(t, err, `required flag(s) "active" not set`)
}

func TestDrop(t *testing.T) {
	out, stderr, err := run(t, "drop", "--active", "About Us", "--over", "Winter", "--offset", "50",
		"--announce", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, `Home
Collections
  Spring
  Summer
  Fall
  About Us
  Winter
My Account
  Addresses
  Order History
`, out)

	assert.Contains(t, stderr, "Picked up About Us.")
	assert.Contains(t, stderr, "About Us was moved after Fall.")
	assert.Contains(t, stderr, "About Us was dropped after Fall.")
}

func TestDropKeepsSubtree(t *testing.T) {
	out, _, err := run(t, "drop", "--active", "Collections", "--over", "Home", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, `Collections
  Spring
  Summer
  Fall
  Winter
Home
About Us
My Account
  Addresses
  Order History
`, out)
}

func TestDropInPlace(t *testing.T) {
	out, stderr, err := run(t, "drop", "--active", "Home", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, sampleText, out)
	assert.Empty(t, stderr)
}

func TestRemove(t *testing.T) {
	out, stderr, err := run(t, "remove", "--id", "Collections", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "Home\nAbout Us\nMy Account\n  Addresses\n  Order History\n", out)
	assert.Contains(t, stderr, "descendants=4")
}

func TestRemoveUnknownItem(t *testing.T) {
	out, stderr, err := run(t, "rm", "--id", "Colections", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, sampleText, out)
	assert.Contains(t, stderr, "nothing removed")
	assert.Contains(t, stderr, "suggestions=Collections")
}

func TestToggle(t *testing.T) {
	out, _, err := run(t, "toggle", "--id", "My Account", "-o", "json")
	require.NoError(t, err)

	items, err := storage.Parse([]byte(out), storage.FormatJSON)
	require.NoError(t, err)
	assert.True(t, tree.FindItem(items, "My Account").Collapsed)
	assert.False(t, tree.FindItem(items, "Collections").Collapsed)
}

func TestToggleSetValue(t *testing.T) {
	path := writeSeed(t, "seed.json", `{"items": [{"id": "A", "collapsed": true, "children": [{"id": "A1"}]}]}`)

	out, _, err := run(t, "toggle", path, "--id", "A", "--value", "true", "-o", "json")
	require.NoError(t, err)
	items, err := storage.Parse([]byte(out), storage.FormatJSON)
	require.NoError(t, err)
	assert.True(t, items[0].Collapsed)

	out, _, err = run(t, "toggle", path, "--id", "A", "-o", "json")
	require.NoError(t, err)
	items, err = storage.Parse([]byte(out), storage.FormatJSON)
	require.NoError(t, err)
	assert.False(t, items[0].Collapsed)
}

func TestToggleErrors(t *testing.T) {
	_, _, err := run(t, "toggle", "--id", "Home", "--property", "hidden")
	assert.ErrorContains(t, err, "unknown property: hidden")

	_, _, err = run(t, "toggle", "--id", "Home", "--value", "maybe")
	assert.ErrorContains(t, err, `invalid value "maybe"`)

	_, _, err = run(t, "toggle", "--id", "Nowhere")
	assert.ErrorContains(t, err, "item not found: Nowhere")
}

func TestCount(t *testing.T) {
	out, _, err := run(t, "count")
	require.NoError(t, err)
	assert.Equal(t, "items: 10\n", out)

	out, _, err = run(t, "count", "--id", "Collections", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := run(t, "show", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestPropertySetter(t *testing.T) {
	tests := []struct {
		value    string
		old      bool
		expected bool
	}{
		{"toggle", false, true},
		{"toggle", true, false},
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			setter, err := propertySetter(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, setter(tt.old))
		})
	}
}

func TestSuggest(t *testing.T) {
	ids := tree.IDs(tree.Flatten(storage.SampleItems()))

	assert.Equal(t, []string{"Summer"}, suggest("sum", ids))
	assert.Equal(t, []string{"Winter"}, suggest("Winterr", ids))
	assert.Nil(t, suggest("", ids))
	assert.Empty(t, suggest("xyz", ids))
}
