package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/oukeidos/slideproj/internal/logger"
)

func withPanicGuard(scope string, onPanic func(any), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r))
			if onPanic != nil {
				onPanic(r)
			}
		}
	}()
	fn()
}

func safeGo(scope string, fn func()) {
	go func() {
		withPanicGuard(scope, nil, fn)
	}()
}

func (v *viewer) safeGo(scope string, fn func()) {
	if v == nil {
		safeGo(scope, fn)
		return
	}
	go func() {
		withPanicGuard(scope, func(r any) {
			v.handleRecoveredPanic(scope, r)
		}, fn)
	}()
}

// safeDo runs fn on the UI goroutine.
func (v *viewer) safeDo(scope string, fn func()) {
	fyne.Do(func() {
		withPanicGuard(scope, func(r any) {
			v.handleRecoveredPanic(scope, r)
		}, fn)
	})
}

func (v *viewer) handleRecoveredPanic(scope string, _ any) {
	if v == nil || fyne.CurrentApp() == nil {
		return
	}
	v.panicNoticeOnce.Do(func() {
		v.safeDo("panic.notice", func() {
			if v.window == nil {
				return
			}
			dialog.ShowInformation(
				"Unexpected Error",
				"An internal error occurred ("+scope+"). The slideshow keeps running; restart the viewer if this repeats.",
				v.window,
			)
		})
	})
}
