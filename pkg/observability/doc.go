/*
Package observability provides lifecycle hooks for monitoring wizard runs.

Metrics exports prometheus counters for steps, signals and run outcomes; LogHooks writes the
same events to a structured logger. Both return domain.LifecycleHooks, which combine with
LifecycleHooks.Merge.
*/
package observability
