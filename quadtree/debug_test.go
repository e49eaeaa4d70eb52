// SPDX-FileCopyrightText: © 2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package quadtree

import (
	"math/rand"
	"testing"

	"github.com/gazed/hqz/rng"
	"github.com/gazed/hqz/sample"
)

func TestBoundariesMatchInternalNodeCount(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	objs := randomObjects(500, r)
	tree := Build(objs, sample.New(rng.New(1)))

	boundaries := tree.Boundaries()
	internal := countInternal(&tree.root, tree)
	if len(boundaries) != internal {
		t.Fatalf("got %d boundaries, want %d internal nodes", len(boundaries), internal)
	}
}

func countInternal(n *node, t *Tree) int {
	if n.left == noChild && n.right == noChild {
		return 0
	}
	return 1 + countInternal(&t.nodes[n.left], t) + countInternal(&t.nodes[n.right], t)
}

func TestBoundariesEmptyTree(t *testing.T) {
	tree := Build(nil, sample.New(rng.New(1)))
	if b := tree.Boundaries(); len(b) != 0 {
		t.Fatalf("expected no boundaries for a leaf-only tree, got %d", len(b))
	}
}
