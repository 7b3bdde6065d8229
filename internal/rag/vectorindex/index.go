package vectorindex

import (
	"fmt"
	"sort"

	"github.com/documind/documind/internal/domain/commonModels"
)

// Entry pairs a passage with its embedding vector.
type Entry struct {
	Passage commonModels.Passage
	Vector  []float32
}

// Index is an in-memory nearest-neighbor structure over normalized vectors.
// It is immutable after Build: no appends, no deletes, rebuild-on-change
// only. Search is a brute-force linear scan, which at document scale
// (hundreds to low thousands of passages) returns exact top-k well inside
// any request budget.
type Index struct {
	entries   []Entry
	dimension int
}

// Build validates the entry set and constructs an index over it. The entries
// slice is copied, so later mutation by the caller cannot reach the index.
func Build(entries []Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: cannot build an empty index", commonModels.ErrIndex)
	}

	dimension := len(entries[0].Vector)
	if dimension == 0 {
		return nil, fmt.Errorf("%w: zero-dimension vector at entry 0", commonModels.ErrIndex)
	}
	for i, e := range entries {
		if len(e.Vector) != dimension {
			return nil, fmt.Errorf("%w: entry %d has dimension %d, index has %d", commonModels.ErrIndex, i, len(e.Vector), dimension)
		}
	}

	owned := make([]Entry, len(entries))
	copy(owned, entries)

	return &Index{entries: owned, dimension: dimension}, nil
}

// Search returns up to k passages ranked by descending cosine similarity to
// the query vector. Vectors are unit length, so similarity is the dot
// product. Ties keep insertion order.
func (idx *Index) Search(query []float32, k int) ([]commonModels.ScoredPassage, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", commonModels.ErrIndex, k)
	}
	if len(idx.entries) == 0 {
		return nil, fmt.Errorf("%w: search on empty index", commonModels.ErrIndex)
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d", commonModels.ErrIndex, len(query), idx.dimension)
	}

	ranked := make([]commonModels.ScoredPassage, len(idx.entries))
	for i, e := range idx.entries {
		ranked[i] = commonModels.ScoredPassage{
			Passage: e.Passage,
			Score:   dot(query, e.Vector),
		}
	}

	// Stable sort so equal scores preserve insertion order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k], nil
}

func (idx *Index) Len() int {
	return len(idx.entries)
}

func (idx *Index) Dimension() int {
	return idx.dimension
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
