// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const flatSrc = `{
	"1": {"id": "1", "name": "Root", "parentId": null},
	"2": {"id": "2", "name": "Second", "parentId": "1", "ord": 20},
	"3": {"id": "3", "name": "Third", "parentId": "1", "ord": 10},
	"4": {"id": "4", "name": "Orphan", "parentId": "999"}
}`

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	t.Logf("stderr: %s", errOut.String())

	return out.String(), err
}

func TestTreeCmd(t *testing.T) {
	out, err := execute(t, flatSrc, "tree", "--sort-by", "ord", "--order", "desc")
	require.NoError(t, err)

	var roots []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &roots))
	require.Len(t, roots, 2)
	assert.Equal(t, "1", roots[0]["id"])
	assert.Equal(t, "4", roots[1]["id"])

	children, ok := roots[0]["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 2)
	assert.Equal(t, "2", children[0].(map[string]any)["id"])
	assert.Equal(t, float64(20), children[0].(map[string]any)["ord"])
}

func TestTreeCmd_Text(t *testing.T) {
	out, err := execute(t, flatSrc, "tree", "-f", "text", "--label", "name")
	require.NoError(t, err)

	assert.Contains(t, out, "1 (Root)")
	assert.Contains(t, out, "3 (Third)")
	assert.Less(t, strings.Index(out, "2 (Second)"), strings.Index(out, "3 (Third)"))
}

func TestTreeCmd_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
	}{
		{name: "invalid json", input: `{`, args: []string{"tree"}},
		{name: "array input", input: `[]`, args: []string{"tree"}},
		{name: "bad order", input: flatSrc, args: []string{"tree", "--order", "up"}},
		{name: "bad locale", input: flatSrc, args: []string{"tree", "--locale", "!!"}},
		{name: "colliding keys", input: flatSrc, args: []string{"tree", "--parent-key", "id"}},
		{name: "bad format", input: flatSrc, args: []string{"tree", "-f", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.input, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestFlattenCmd(t *testing.T) {
	src := `[{"id": "a", "children": [{"id": "b", "size": 3, "children": []}]}, {"id": "c"}]`

	dir := t.TempDir()
	path := filepath.Join(dir, "forest.json")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	out, err := execute(t, "", "flatten", path)
	require.NoError(t, err)

	// Entry order follows the pre-order walk.
	assert.Less(t, strings.Index(out, `"a":`), strings.Index(out, `"b":`))
	assert.Less(t, strings.Index(out, `"b":`), strings.Index(out, `"c":`))

	var flat map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &flat))
	require.Len(t, flat, 3)
	assert.Equal(t, "a", flat["b"]["parentId"])
	assert.Equal(t, float64(3), flat["b"]["size"])
	assert.NotContains(t, flat["a"], "children")
	assert.NotContains(t, flat["a"], "parentId")
}

func TestFlattenCmd_YAML(t *testing.T) {
	out, err := execute(t, `[{"uid": "a", "items": [{"uid": "b"}]}]`,
		"flatten", "-f", "yaml", "--id-key", "uid", "--children-key", "items", "--parent-key", "owner")
	require.NoError(t, err)

	var flat map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &flat))
	assert.Equal(t, "a", flat["b"]["owner"])

	_, err = execute(t, `[]`, "flatten", "-f", "text")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRoundTripCmd(t *testing.T) {
	tree, err := execute(t, flatSrc, "tree")
	require.NoError(t, err)

	flat, err := execute(t, tree, "flatten")
	require.NoError(t, err)

	var got, want map[string]any
	require.NoError(t, json.Unmarshal([]byte(flat), &got))
	require.NoError(t, json.Unmarshal([]byte(flatSrc), &want))
	assert.Equal(t, want, got)
}
