// Package logging builds the structured logger used by dotrepeat.
//
// Records go to a rotating file (lumberjack) when a file is configured,
// otherwise to an optional writer, otherwise nowhere. Warnings and errors
// are also kept in a small in-memory ring so a command can report them
// after it finishes.
package logging
