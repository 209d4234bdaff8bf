/*
Package domain contains the core value types shared by the Stepwise wizard engine.

It defines the vocabulary of a dynamic multi-step flow: property keys, the control signals a
prompt can answer with instead of a value, the per-property step cache, step offsets used when a
wizard is embedded in a larger flow, and the lifecycle events emitted while a flow runs. This
package is kept pure and free of I/O.

# Key Entities

  - Key / KeySet: identifiers of form properties and the running "assigned" set.
  - Signal / Response: the outcome of a single prompt (an answer, a skip, or a navigation signal).
  - StepCache: per-property scratch data that survives back-navigation.
  - StepOffset / StepDisplay: step numbering for "step X of Y".
  - LifecycleHooks: optional observability callbacks.
*/
package domain
