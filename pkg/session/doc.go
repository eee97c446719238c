/*
Package session implements the AbsherAi session controller.

A Controller owns the single conversation of a process: the active flow, the
"awaiting free text" mode and the pending suggested flow. Every entry point
(typed or recognized text, menu and choice buttons, typed Commands from remote
hosts) is serialized behind one lock, so hosts may call the controller from any
goroutine. Rendering goes through ports.UI and every bot message is narrated
through the exclusive speech.Narrator.
*/
package session
