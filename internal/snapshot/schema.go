package snapshot

import (
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "nebula://tasks.schema.json"

// bundledTaskSchema is the embedded task file schema.
const bundledTaskSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Nebula Tasks",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "description", "status"],
    "properties": {
      "id": { "type": "integer", "minimum": 1 },
      "title": { "type": "string" },
      "description": { "type": "string" },
      "status": { "enum": ["Todo", "InProgress", "Done"] }
    }
  }
}
`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
)

// Schema returns the embedded task file schema JSON content.
func Schema() []byte {
	return []byte(bundledTaskSchema)
}

func taskSchema() *jsonschema.Schema {
	compileOnce.Do(func() {
		compiled = jsonschema.MustCompileString(schemaURL, bundledTaskSchema)
	})
	return compiled
}
