package main

import "fyne.io/fyne/v2"

type keyAction int

const (
	actionNone keyAction = iota
	actionForward
	actionBackward
	actionBegin
	actionEnd
	actionTogglePlayback
	actionToggleLoop
	actionFullScreen
	actionQuit
)

var keyActions = map[fyne.KeyName]keyAction{
	fyne.KeyRight:     actionForward,
	fyne.KeySpace:     actionForward,
	fyne.KeyPageDown:  actionForward,
	fyne.KeyLeft:      actionBackward,
	fyne.KeyBackspace: actionBackward,
	fyne.KeyPageUp:    actionBackward,
	fyne.KeyHome:      actionBegin,
	fyne.KeyEnd:       actionEnd,
	fyne.KeyP:         actionTogglePlayback,
	fyne.KeyL:         actionToggleLoop,
	fyne.KeyF11:       actionFullScreen,
	fyne.KeyEscape:    actionQuit,
	fyne.KeyQ:         actionQuit,
}

func actionForKey(name fyne.KeyName) keyAction {
	return keyActions[name]
}
