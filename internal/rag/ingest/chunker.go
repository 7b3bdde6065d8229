package ingest

import (
	"strings"

	"github.com/documind/documind/internal/domain/commonModels"
)

// Separators ordered from "best" to "worst" for semantic meaning: paragraph,
// line, sentence, word, then raw characters as the last resort.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// PrepareChunks splits each page into overlapping passages. The splitter is a
// pure function of its input, so re-chunking a document always yields the
// same passages in the same order.
func PrepareChunks(pages []commonModels.RawPage, limit int, overlap int) []commonModels.Passage {
	var allChunks []commonModels.Passage

	for _, page := range pages {
		stringChunks := splitTextIntoChunks(page.Content, limit, overlap)

		prev := ""
		for i, text := range stringChunks {
			allChunks = append(allChunks, commonModels.Passage{
				Text:    text,
				PageNum: page.Number,
				ChunkId: i,
				Overlap: sharedOverlap(prev, text, overlap),
			})
			prev = text
		}
	}

	return allChunks
}

// splitTextIntoChunks splits text into chunks of at most limit characters,
// preferring the best separator present in the text and recursing to worse
// separators for any piece that is still too large. Consecutive chunks carry
// an overlap of up to `overlap` trailing characters of the previous chunk
// where the text permits.
func splitTextIntoChunks(text string, limit int, overlap int) []string {
	return splitRecursive(text, limit, overlap, separators)
}

func splitRecursive(text string, limit int, overlap int, seps []string) []string {
	// If text is already small enough, just return it: no overlap applied
	if len(text) <= limit {
		return []string{text}
	}

	sep, rest := pickSeparator(text, seps)
	if sep == "" {
		// Hard cut when no separator exists within the budget
		return hardCut(text, limit, overlap)
	}

	parts := strings.Split(text, sep)
	var chunks []string
	var current strings.Builder
	carried := 0 //length of overlap text carried over from the previous chunk

	// emit closes the current chunk and seeds the next one with the overlap
	// tail of what was just emitted. A chunk consisting only of carried
	// overlap is never emitted on its own.
	emit := func() {
		if current.Len() > carried {
			chunk := current.String()
			chunks = append(chunks, chunk)
			current.Reset()
			carried = 0
			if overlap > 0 && len(chunk) > overlap {
				current.WriteString(chunk[len(chunk)-overlap:])
				carried = current.Len()
			}
			return
		}
		current.Reset()
		carried = 0
	}

	for _, part := range parts {
		needed := len(part)
		if current.Len() > 0 {
			needed += len(sep)
		}

		if current.Len()+needed > limit {
			emit()

			needed = len(part)
			if current.Len() > 0 {
				needed += len(sep)
			}
			if current.Len()+needed > limit {
				// The part does not fit even on a fresh chunk with overlap:
				// drop the overlap for this boundary.
				current.Reset()
				carried = 0

				if len(part) > limit {
					// Still too large on its own - recurse with the worse
					// separators. All sub-chunks but the last are final; the
					// last one seeds the builder so following parts can
					// continue it.
					sub := splitRecursive(part, limit, overlap, rest)
					chunks = append(chunks, sub[:len(sub)-1]...)
					current.WriteString(sub[len(sub)-1])
					continue
				}
			}
		}

		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(part)
	}

	if current.Len() > carried {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func pickSeparator(text string, seps []string) (string, []string) {
	for i, s := range seps {
		if s == "" {
			return "", nil
		}
		if strings.Contains(text, s) {
			return s, seps[i+1:]
		}
	}
	return "", nil
}

func hardCut(text string, limit int, overlap int) []string {
	step := limit - overlap
	if step <= 0 {
		step = limit
	}

	var chunks []string
	for start := 0; start < len(text); start += step {
		end := start + limit
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
	}
	return chunks
}

// sharedOverlap reports how many leading characters of cur also end prev,
// capped at max. Used to record the actual overlap span on each passage.
func sharedOverlap(prev string, cur string, max int) int {
	if prev == "" {
		return 0
	}
	n := max
	if len(cur) < n {
		n = len(cur)
	}
	if len(prev) < n {
		n = len(prev)
	}
	for k := n; k > 0; k-- {
		if strings.HasSuffix(prev, cur[:k]) {
			return k
		}
	}
	return 0
}
