package vim

import "github.com/atotto/clipboard"

// SystemClipboard is a ClipboardProvider backed by the operating system
// clipboard.
type SystemClipboard struct{}

// Get returns the current clipboard content.
func (SystemClipboard) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set replaces the clipboard content.
func (SystemClipboard) Set(content string) error {
	return clipboard.WriteAll(content)
}

// SystemClipboardAvailable reports whether a clipboard utility was found.
func SystemClipboardAvailable() bool {
	return !clipboard.Unsupported
}
