/*
Package ports defines the collaborator interfaces of the AbsherAi dialogue engine.

The core consumes these interfaces and never talks to a terminal, browser, speech
engine or database directly; hosts and adapters implement them.

# Key Interfaces

  - UI: renders chat messages and choice rows.
  - Synthesizer: speaks one utterance (blocking until it ends).
  - Listener: captures at most one recognized utterance.
  - TranscriptStore: appends rendered messages to an audit trail.
  - CatalogLoader: produces the flow catalog at startup.
*/
package ports
