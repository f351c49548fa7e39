// Package input turns keystrokes into editor actions.
//
// A Handler reads keys in Vim notation ("3Afoo<Esc>j."). In normal and
// visual mode keys feed the vim command parser; completed commands begin
// an insert session or repeat the last one. In insert mode keys are typed
// into the editor, <BS> deletes and <Esc> returns to normal mode, which
// finishes the session.
//
//	h := input.NewHandler(editor, modes, controller)
//	if err := h.HandleKeys(ctx, "cwbar<Esc>w."); err != nil {
//	    return err
//	}
package input
