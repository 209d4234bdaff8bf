/*
Package form provides a declarative Form for the Stepwise wizard.

Each property is bound once, with a typed Property lens and a provider that builds its
prompter. Visibility is declared with Go predicates (ShowIf), expr-lang expressions (When) or
dependencies on other properties (RequireAssigned); defaults with Default and DefaultFunc.

	f := form.New[Config]()
	err := form.Bind(f, form.Pointer[Config]("region", func(c *Config) **string { return &c.Region }),
		regionPrompter,
		form.When[Config]("Cloud == 'aws'"),
		form.Default[Config]("us-east-1"),
	)
*/
package form
