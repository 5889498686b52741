package app

import (
	"gltfviewer/editor"
	"gltfviewer/engine"
)

// EditorControls is the editor's default table with the editor toggle
// rebound to a bare Escape press, allowed only while no text field has focus.
func EditorControls() editor.Controls {
	return editor.DefaultBindings().
		Unbind(editor.PlayPauseEditor).
		Insert(editor.PlayPauseEditor, editor.Binding{
			Input:      editor.Single(editor.Keyboard(engine.KeyEscape)),
			Conditions: []editor.BindingCondition{editor.ListeningForText(false)},
		})
}
