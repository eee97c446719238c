// Package runtime executes catalog flows one step at a time.
//
// A flow instance moves strictly forward: Start positions it at step 0, each
// Continue (for narrations) or Answer (for questions) advances it by exactly one,
// and once the last step is passed the output rule runs once and the instance is
// discarded. The engine never blocks; each call returns the ActionRequests the
// host must present before the next event can arrive.
package runtime
