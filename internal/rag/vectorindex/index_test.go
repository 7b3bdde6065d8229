package vectorindex

import (
	"errors"
	"testing"

	"github.com/documind/documind/internal/domain/commonModels"
)

func entry(text string, vec ...float32) Entry {
	return Entry{Passage: commonModels.Passage{Text: text}, Vector: vec}
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(nil)
	if !errors.Is(err, commonModels.ErrIndex) {
		t.Errorf("expected ErrIndex for empty build, got %v", err)
	}
}

func TestBuild_DimensionMismatch(t *testing.T) {
	_, err := Build([]Entry{
		entry("a", 1, 0),
		entry("b", 1, 0, 0),
	})
	if !errors.Is(err, commonModels.ErrIndex) {
		t.Errorf("expected ErrIndex for mixed dimensions, got %v", err)
	}
}

func TestBuild_ZeroDimension(t *testing.T) {
	_, err := Build([]Entry{entry("a")})
	if !errors.Is(err, commonModels.ErrIndex) {
		t.Errorf("expected ErrIndex for zero-dimension vector, got %v", err)
	}
}

func TestSearch_Ranking(t *testing.T) {
	idx, err := Build([]Entry{
		entry("north", 0, 1),
		entry("east", 1, 0),
		entry("northeast", 0.7071, 0.7071),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	results, err := idx.Search([]float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Passage.Text != "east" || results[1].Passage.Text != "northeast" {
		t.Errorf("ranking wrong: %q then %q", results[0].Passage.Text, results[1].Passage.Text)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("scores not descending: %f < %f", results[0].Score, results[1].Score)
	}
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	idx, err := Build([]Entry{
		entry("first", 1, 0),
		entry("second", 1, 0),
		entry("third", 1, 0),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	results, err := idx.Search([]float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if results[i].Passage.Text != w {
			t.Errorf("position %d got %q, want %q", i, results[i].Passage.Text, w)
		}
	}
}

func TestSearch_KLargerThanCorpus(t *testing.T) {
	idx, _ := Build([]Entry{
		entry("a", 1, 0),
		entry("b", 0, 1),
	})

	results, err := idx.Search([]float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected full corpus, got %d results", len(results))
	}

	seen := map[string]bool{}
	for _, r := range results {
		if seen[r.Passage.Text] {
			t.Errorf("duplicate passage %q in results", r.Passage.Text)
		}
		seen[r.Passage.Text] = true
	}
}

func TestSearch_InvalidInputs(t *testing.T) {
	idx, _ := Build([]Entry{entry("a", 1, 0)})

	if _, err := idx.Search([]float32{1, 0}, 0); !errors.Is(err, commonModels.ErrIndex) {
		t.Errorf("expected ErrIndex for k=0, got %v", err)
	}
	if _, err := idx.Search([]float32{1, 0, 0}, 1); !errors.Is(err, commonModels.ErrIndex) {
		t.Errorf("expected ErrIndex for dimension mismatch, got %v", err)
	}
}

func TestBuild_CopiesEntries(t *testing.T) {
	source := []Entry{entry("a", 1, 0), entry("b", 0, 1)}
	idx, err := Build(source)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	source[0] = entry("mutated", 0, 1)

	results, _ := idx.Search([]float32{1, 0}, 1)
	if results[0].Passage.Text != "a" {
		t.Errorf("index affected by caller mutation, got %q", results[0].Passage.Text)
	}
}
