/*
Package stepwise is a dynamic multi-step interactive flow engine ("wizard").

A Wizard drives a sequence of single-question prompts that together populate a typed state.
The set and order of questions is not fixed in advance: after every answer the wizard asks the
Form which properties have become visible and schedules them next, depth-first, ahead of
siblings that were already pending.

# Key Features

  - Backward navigation: a Back answer re-asks the previous question and forgets everything
    its earlier answer had revealed.
  - Progress estimation: "step X of Y" is recomputed as the path grows, and prompters get an
    Estimator to preview how many steps a hypothetical answer would add.
  - Step caches: each property keeps its last pick, so revisited questions are pre-selected.
  - Composition: NewNested embeds a wizard inside another as a single composite prompt that
    shares the parent's step numbering.

# Usage

	type Order struct {
		Size  string
		Extra *string
	}

	f := form.New[Order]()
	_ = form.Bind(f, form.Property[Order, string]{
		Key: "size",
		Get: func(o *Order) (string, bool) { return o.Size, o.Size != "" },
		Set: func(o *Order, v string) { o.Size = v },
		Clear: func(o *Order) { o.Size = "" },
	}, func(v ports.View[Order]) ports.Prompter[string] {
		return prompter.NewSelect(term, "Size?", prompter.Choices("S", "M", "L"))
	})

	w := stepwise.New[Order](f)
	order, err := w.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if order == nil {
		log.Println("cancelled")
	}
*/
package stepwise
