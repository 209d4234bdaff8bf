/*
Package manifest turns declarative question sets into forms.

A manifest is either a single YAML file:

	title: New service
	questions:
	  - key: name
	    type: text
	    message: Service name?
	    required: true
	  - key: db.enabled
	    type: confirm
	    message: Needs a database?
	  - key: db.engine
	    type: select
	    message: Which engine?
	    choices: [postgres, mysql]
	    when: db.enabled == true

or a directory of markdown documents, one question per file, with the same fields in the
frontmatter and the description as the body. Dotted keys write nested maps.
*/
package manifest
