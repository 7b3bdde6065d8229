package commonModels

import "time"

type Document struct {
	Key         string    `json:"session_key"`
	Name        string    `json:"doc_name"`
	PageCount   int       `json:"page_count"`
	IngestedAt  time.Time `json:"ingested_at"`
	ContentType DocType   `json:"contentType"`
}

// RawPage is one page of extracted text, in document order.
type RawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Passage is the unit of retrieval: one chunk of page text. Immutable once
// produced by the chunker; owned by the vector index that holds it.
type Passage struct {
	Text    string `json:"content"`
	PageNum int    `json:"page_num"`
	ChunkId int    `json:"chunk_order"`
	Overlap int    `json:"overlap_chars"` //characters shared with the previous passage of the same page
}

// ScoredPassage is a retrieval hit: a passage plus its cosine similarity to
// the query vector.
type ScoredPassage struct {
	Passage Passage
	Score   float32
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var ERR DocType = "ERROR"
