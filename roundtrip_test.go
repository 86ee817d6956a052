// SPDX-License-Identifier: MIT
package maptree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"gitlab.com/fisherprime/maptree/types"
)

func countNodes(roots []types.Record, childrenKey string) (count int) {
	stack := append([]types.Record{}, roots...)
	for len(stack) > 0 {
		var node types.Record
		node, stack = stack[len(stack)-1], stack[:len(stack)-1]
		count++

		children, _ := node.Children(childrenKey)
		stack = append(stack, children...)
	}

	return
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		keys    Keys
		forest  func(k Keys) []types.Record
		wantLen int
	}{
		{
			name: "default keys",
			keys: DefaultKeys(),
			forest: func(k Keys) []types.Record {
				return []types.Record{
					{k.ID: "a", "name": "A", k.Children: []types.Record{
						{k.ID: "b", k.Parent: "a", k.Children: []types.Record{
							{k.ID: "d", k.Parent: "b", k.Children: []types.Record{}},
						}},
						{k.ID: "c", k.Parent: "a", k.Children: []types.Record{}},
					}},
					{k.ID: "e", k.Children: []types.Record{}},
				}
			},
			wantLen: 5,
		},
		{
			name: "custom keys",
			keys: Keys{ID: "uid", Parent: "owner", Children: "items"},
			forest: func(k Keys) []types.Record {
				return []types.Record{
					{k.ID: "root", k.Children: []types.Record{
						{k.ID: "leaf", k.Parent: "root", "size": 3, k.Children: []types.Record{}},
					}},
				}
			},
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := tt.forest(tt.keys)
			require.Equal(t, tt.wantLen, countNodes(forest, tt.keys.Children))

			flat, err := FlattenTree(forest, WithKeys(tt.keys))
			require.NoError(t, err)
			require.Equal(t, tt.wantLen, flat.Len())

			rebuilt, err := BuildTree(flat, WithKeys(tt.keys))
			require.NoError(t, err)
			require.Equal(t, tt.wantLen, countNodes(rebuilt, tt.keys.Children))

			if diff := cmp.Diff(forest, rebuilt); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTrip_NodeConservation(t *testing.T) {
	src := types.FromMap(map[string]types.Record{
		"a": {"id": "a"},
		"b": {"id": "b", "parentId": "a"},
		"c": {"id": "c", "parentId": "b"},
		"d": {"id": "d", "parentId": "missing"},
		"e": {"id": "e", "parentId": "a"},
	})

	roots, err := BuildTree(src)
	require.NoError(t, err)
	require.Equal(t, src.Len(), countNodes(roots, DefaultChildrenKey))

	flat, err := FlattenTree(roots)
	require.NoError(t, err)
	require.ElementsMatch(t, src.Keys(), flat.Keys())
}
