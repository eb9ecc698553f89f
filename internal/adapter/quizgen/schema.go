package quizgen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const generatedQuizSchemaURL = "schema://generated-quiz.json"

const generatedQuizSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["question", "options", "correct_answer"],
        "properties": {
          "id": {"type": "string"},
          "question": {"type": "string", "minLength": 1},
          "options": {
            "type": "array",
            "minItems": 2,
            "items": {"type": "string"}
          },
          "correct_answer": {"type": "integer", "minimum": 0},
          "topic_id": {"type": "string"},
          "topic_title": {"type": "string"},
          "is_bonus": {"type": "boolean"},
          "explanation": {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func quizSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(generatedQuizSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(generatedQuizSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(generatedQuizSchemaURL)
	})
	return compiledSchema, schemaErr
}

// validateGenerated checks raw generator output against the quiz schema.
func validateGenerated(raw string) error {
	sch, err := quizSchema()
	if err != nil {
		return fmt.Errorf("compile quiz schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
