package tui

// resetMsg asks the model to clear the error message identified by token.
type resetMsg struct {
	token uint64
}
