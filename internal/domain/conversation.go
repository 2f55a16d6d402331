package domain

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry of the assistant's conversation history. History lives
// only in process memory for the duration of an assistant session; it is
// never persisted to the database.
type Turn struct {
	Role    string
	Content string
}
