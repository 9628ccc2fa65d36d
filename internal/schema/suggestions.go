package schema

// fieldSuggestions maps field names to static remediation advice attached to
// schema issues.
var fieldSuggestions = map[string]string{
	"type":         "Set `type` to one of: persona, skill, agent, prompt, template, tool, ensemble, memory",
	"name":         "Add a short human-readable `name`",
	"description":  "Add a one-sentence `description` of what this content does",
	"unique_id":    "Add a `unique_id` that is unique across the library",
	"author":       "Add the submitting `author` handle",
	"category":     "Add a `category` so the content can be indexed",
	"version":      "Use semantic versioning, e.g. `1.0.0`",
	"tags":         "Provide `tags` as a list of short strings",
	"license":      "Name a license, e.g. `MIT` or `CC-BY-4.0`",
	"capabilities": "List at least one capability, e.g. `- summarize`",
	"format":       "Add a `format` string describing the template output",
}

func suggestionFor(field string) string {
	return fieldSuggestions[field]
}
