package models

// VocabularyItem is a single word with its reading and meaning.
type VocabularyItem struct {
	ID      string `json:"id"`
	Word    string `json:"word"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
	Level   Level  `json:"level"`
	Example string `json:"example,omitempty"`
}

// GrammarPoint describes one grammar pattern.
type GrammarPoint struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Pattern     string   `json:"pattern"`
	Explanation string   `json:"explanation"`
	Level       Level    `json:"level"`
	Examples    []string `json:"examples,omitempty"`
}

// ReadingPassage is a graded reading text with comprehension questions.
type ReadingPassage struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Level       Level    `json:"level"`
	Body        string   `json:"body"`
	Translation string   `json:"translation,omitempty"`
	Questions   []string `json:"questions,omitempty"`
}

// ChatRole is the author of a chat message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a conversation with the AI tutor.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
