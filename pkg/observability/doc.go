/*
Package observability provides tools for monitoring the AbsherAi dialogue engine.

It turns lifecycle hooks into Prometheus metrics and structured log lines. Both
are plain domain.LifecycleHooks values, so they can be combined with
domain.MergeHooks and handed to the session controller.
*/
package observability
