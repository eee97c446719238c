/*
Package absherai is a scripted assistant for Saudi Ministry of Interior
e-services. It simulates the dialogue of services such as renewing a national
ID or issuing an exit and re-entry visa: the user names a service in Arabic,
the assistant recognizes it, then walks a fixed sequence of narration and
yes/no questions before printing a simulated result.

# Architecture

The session controller (pkg/session) owns the dialogue state and renders
into a ports.UI. Hosts provide the UI:

  - runner.Terminal for the interactive chat (absher chat)
  - hub.Hub for the HTTP API with Server-Sent Events (absher serve)
  - hub.Hub for the MCP tool server (absher mcp)

Flows come from the built-in catalog (pkg/catalog), a YAML catalog file, or a
directory of Markdown flow files read through loam (pkg/adapters/loam).

# Usage

	cat := catalog.Default()
	ctrl := session.NewController(cat, ui)
	defer ctrl.Close()

	ctrl.Open(ctx)
	ctrl.SubmitUserInput(ctx, "ابغى اجدد الجواز")

Nothing talks to a real government system; every result is a simulation.
*/
package absherai
