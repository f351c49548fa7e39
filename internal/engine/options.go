package engine

// Option configures an Engine built by New.
type Option func(*Engine)

// WithContent sets the initial text. CRLF line endings become LF.
func WithContent(content string) Option {
	return func(e *Engine) { e.initContent = content }
}

// WithAutoIndent makes AutoIndentEnabled report enabled.
func WithAutoIndent(enabled bool) Option {
	return func(e *Engine) { e.autoIndent = enabled }
}

// WithReadOnly rejects every edit, undo and redo with ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) { e.readOnly = true }
}
