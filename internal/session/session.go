package session

import (
	"sync"
	"time"

	"github.com/documind/documind/internal/domain/commonModels"
)

// Index is the read surface a session needs from its vector index.
type Index interface {
	Search(query []float32, k int) ([]commonModels.ScoredPassage, error)
	Len() int
}

// Session is one document's live Q&A context: the index built from it, plus
// the chat history accumulated against it. The index is read-only after
// construction; only the history mutates, under its own lock.
type Session struct {
	Key       string
	Doc       commonModels.Document
	Index     Index
	CreatedAt time.Time

	historyLock sync.RWMutex
	history     []commonModels.ChatMessage
}

func New(key string, doc commonModels.Document, index Index) *Session {
	return &Session{
		Key:       key,
		Doc:       doc,
		Index:     index,
		CreatedAt: time.Now(),
	}
}

func (s *Session) ChunkCount() int {
	return s.Index.Len()
}

// AppendExchange records a question/answer pair in chronological order.
func (s *Session) AppendExchange(question string, answer string) {
	s.historyLock.Lock()
	defer s.historyLock.Unlock()
	s.history = append(s.history,
		commonModels.ChatMessage{Role: commonModels.RoleUser, Content: question},
		commonModels.ChatMessage{Role: commonModels.RoleAssistant, Content: answer},
	)
}

func (s *Session) History() []commonModels.ChatMessage {
	s.historyLock.RLock()
	defer s.historyLock.RUnlock()
	out := make([]commonModels.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory empties the chat history. The vector index is untouched.
func (s *Session) ClearHistory() {
	s.historyLock.Lock()
	defer s.historyLock.Unlock()
	s.history = nil
}
