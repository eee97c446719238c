/*
Package domain contains the core domain models of the AbsherAi dialogue engine.

It defines the immutable flow definitions loaded at startup, the mutable state of
the single active flow, the classified answers that drive it and the typed
commands and UI events exchanged with the host. The package is kept pure and free
of I/O so that every host (terminal, HTTP, MCP) shares the same vocabulary.

# Key Entities

  - FlowDefinition: an ordered sequence of Narrate/Question steps plus an output rule.
  - FlowInstance: the process-wide active flow (id, step index, context).
  - Answer: the semantic category of a free-text reply.
  - Command: a typed UI intent (start a flow, answer, continue, select a section).
  - ActionRequest: what the state machine asks the controller to present.
*/
package domain
