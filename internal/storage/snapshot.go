package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sandeepkv93/todod/internal/model"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// dueDateLayout matches the browser's Date.prototype.toISOString output.
const dueDateLayout = "2006-01-02T15:04:05.000Z07:00"

const snapshotSchemaURL = "todos.schema.json"

const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "text": {"type": "string", "minLength": 1},
      "completed": {"type": "boolean"},
      "dueDate": {"type": "string", "minLength": 1}
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func snapshotValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchema)); err != nil {
			schemaErr = fmt.Errorf("add snapshot schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(snapshotSchemaURL)
	})
	return compiledSchema, schemaErr
}

// EncodeTodos serializes todos into the persisted snapshot form. It refuses
// to produce a snapshot DecodeTodos would reject.
func EncodeTodos(todos []model.Todo) (string, error) {
	records := make([]todoRecord, 0, len(todos))
	seen := make(map[int64]bool, len(todos))
	for _, t := range todos {
		if seen[t.ID] {
			return "", fmt.Errorf("%w: duplicate id %d", ErrMalformedSnapshot, t.ID)
		}
		seen[t.ID] = true
		rec := todoRecord{ID: t.ID, Text: t.Text, Completed: t.Completed}
		if t.DueDate != nil {
			due := t.DueDate.UTC().Format(dueDateLayout)
			rec.DueDate = &due
		}
		records = append(records, rec)
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal todos: %w", err)
	}
	if _, err := validateSnapshot(string(payload)); err != nil {
		return "", err
	}
	return string(payload), nil
}

// DecodeTodos parses a snapshot produced by EncodeTodos. Any structural,
// schema or due-date problem, and any duplicate id, is reported as
// ErrMalformedSnapshot.
func DecodeTodos(raw string) ([]model.Todo, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedSnapshot)
	}
	records, err := validateSnapshot(raw)
	if err != nil {
		return nil, err
	}

	out := make([]model.Todo, 0, len(records))
	seen := make(map[int64]bool, len(records))
	for i, rec := range records {
		if seen[rec.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrMalformedSnapshot, rec.ID)
		}
		seen[rec.ID] = true
		todo := model.Todo{ID: rec.ID, Text: rec.Text, Completed: rec.Completed}
		if rec.DueDate != nil {
			due, parseErr := parseDueDate(*rec.DueDate)
			if parseErr != nil {
				return nil, fmt.Errorf("%w: todo %d due date: %v", ErrMalformedSnapshot, i, parseErr)
			}
			todo.DueDate = &due
		}
		out = append(out, todo)
	}
	return out, nil
}

// validateSnapshot checks raw against the snapshot schema and returns its
// records.
func validateSnapshot(raw string) ([]todoRecord, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	schema, err := snapshotValidator()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	var records []todoRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return records, nil
}

func parseDueDate(v string) (time.Time, error) {
	if tm, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return tm, nil
	}
	return model.ParseDueDate(v)
}
