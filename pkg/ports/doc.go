/*
Package ports defines the collaborator contracts the Stepwise wizard consumes.

The engine does not render anything or know how a single question is asked. It drives
implementations of these interfaces, which allows forms and prompters to live in any host:
a terminal, a test script, or another wizard.

# Key Interfaces

  - Prompter: a single-question widget. Prompt is the one suspension point of a run.
  - Form: the declarative table of properties, their visibility and their prompter providers.
  - Lens: typed access to one property of the state, resolved once at bind time.
*/
package ports
