// Package cycles: canonicalization helpers.
//
// A directed cycle can be reported from any of its rotations; detection
// dedupes them by rotating every found cycle so the lexicographically
// smallest node ID leads. Direction is preserved: a directed cycle and its
// reversal are distinct flows, so unlike the undirected case there is no
// reversal comparison.

package cycles

import (
	"strings"

	"github.com/finlytics-lab/amlnet/txgraph"
)

// joinSig concatenates the elements of c with commas, producing a single
// string signature. Time Complexity: O(total length of elements).
func joinSig(c []string) string {
	return strings.Join(c, ",")
}

// minRotationIndex implements Booth's algorithm to find the starting index
// of the lexicographically minimal rotation of s in O(n) time.
// Algorithm overview:
//  1. Duplicate the sequence (doubled) to length 2n.
//  2. Maintain an array f of failure links initialized to -1.
//  3. Track candidate k = 0; for j from 1 to 2n-1, adjust k based on comparisons.
//  4. After scanning, k is the index of the minimal rotation.
func minRotationIndex(s []string) int {
	doubled := append(append([]string(nil), s...), s...) // duplicate sequence
	n := len(s)                                          // original length
	f := make([]int, 2*n)                                // failure link array
	for i := range f {
		f[i] = -1 // initialize all to -1
	}
	k := 0                     // starting index of minimal rotation
	for j := 1; j < 2*n; j++ { // iterate through doubled sequence
		i := f[j-k-1] // failure link lookup
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] { // found smaller element
				k = j - i - 1 // update candidate k
			}
			i = f[i] // jump in failure links
		}
		if doubled[j] != doubled[k+i+1] { // mismatch or i == -1
			if doubled[j] < doubled[k] { // j-th element smaller than current candidate
				k = j // update k
			}
			f[j-k] = -1 // set failure at new position
		} else {
			f[j-k] = i + 1 // extend match length
		}
	}

	return k
}

// canonical rotates the open cycle (nodes[i] -> nodes[i+1], closing back to
// nodes[0]) so the minimal node ID leads, keeping edges aligned with nodes.
// Returns the closed canonical sequence [v0...v0], the rotated edges, and
// the comma-joined signature used for deduplication.
//
// Edge alignment invariant: edges[i] runs nodes[i] -> nodes[(i+1)%n], which
// rotating both slices by the same offset preserves.
func canonical(nodes []string, edges []*txgraph.Edge) ([]string, []*txgraph.Edge, string) {
	n := len(nodes)
	k := minRotationIndex(nodes)

	rotNodes := make([]string, 0, n+1)
	rotEdges := make([]*txgraph.Edge, 0, n)
	for i := 0; i < n; i++ {
		rotNodes = append(rotNodes, nodes[(k+i)%n])
		rotEdges = append(rotEdges, edges[(k+i)%n])
	}
	// Close the loop by repeating the leading node.
	rotNodes = append(rotNodes, rotNodes[0])

	return rotNodes, rotEdges, joinSig(rotNodes)
}
