package app

import (
	_ "embed"
)

// bridgeScript defines window.dayscript.invoke/on/receive in every document the engine loads.
//
//go:embed bridge.js
var bridgeScript string

// receiveScript wraps an encoded bus message for delivery to the page.
func receiveScript(payload string) string {
	return "window.dayscript&&window.dayscript.receive(" + payload + ");"
}
