package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasks-go/internal/utils"
)

const snapshotSchemaURL = "tasks.schema.json"

// snapshotSchema describes a store file. Unknown element fields are ignored.
const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["description"],
    "properties": {
      "description": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiledSnapshotSchema = mustCompileSnapshotSchema()

func mustCompileSnapshotSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchema)); err != nil {
		panic(fmt.Sprintf("task: add snapshot schema: %v", err))
	}
	schema, err := compiler.Compile(snapshotSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("task: compile snapshot schema: %v", err))
	}
	return schema
}

// decodeSnapshot parses a store file. It returns a *FormatError when the top
// level is not an array and a *CorruptionError for anything else that keeps
// the data from becoming a task list.
func decodeSnapshot(path string, data []byte) ([]Task, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &CorruptionError{Path: path, Err: fmt.Errorf("parse task file: %w", err)}
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, &FormatError{Path: path, Got: jsonKind(raw)}
	}

	if err := compiledSnapshotSchema.Validate(raw); err != nil {
		return nil, &CorruptionError{Path: path, Err: schemaError(err)}
	}

	tasks := make([]Task, 0, len(items))
	for i, item := range items {
		t, err := taskFromElement(i, item)
		if err != nil {
			return nil, &CorruptionError{Path: path, Err: err}
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// taskFromElement reads the schema-checked element at index i using exact
// key names. Other keys, including case variants of the known ones, are
// ignored.
func taskFromElement(i int, item interface{}) (Task, error) {
	obj, ok := item.(map[string]interface{})
	if !ok {
		return Task{}, fmt.Errorf("[%d]: got %s, want object", i, jsonKind(item))
	}
	desc, ok := obj["description"].(string)
	if !ok {
		return Task{}, fmt.Errorf("[%d].description: missing or not a string", i)
	}
	t := Task{Description: desc}
	if v, present := obj["completed"]; present {
		done, ok := v.(bool)
		if !ok {
			return Task{}, fmt.Errorf("[%d].completed: got %s, want boolean", i, jsonKind(v))
		}
		t.Completed = done
	}
	return t, nil
}

// encodeSnapshot renders tasks as an indented JSON array with a trailing newline.
func encodeSnapshot(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return buf.Bytes(), nil
}

// writeSnapshot replaces path with the encoded tasks using a temp file in
// the same directory, fsync and rename. An existing file keeps its permissions.
// When path is a symlink the target is replaced instead.
func writeSnapshot(path string, tasks []Task) error {
	data, err := encodeSnapshot(tasks)
	if err != nil {
		return err
	}

	// Write through a symlink so the link survives and its target is updated.
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tasks-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}

	success = true
	return nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// schemaError flattens a schema validation error into one error per failing
// element, each prefixed with its location, e.g. "[1].description: ...".
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var errs []error
	collectSchemaErrors(&errs, ve)
	if len(errs) == 0 {
		return err
	}
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, ve *jsonschema.ValidationError) {
	if ve == nil {
		return
	}
	if len(ve.Causes) == 0 {
		path := utils.JSONPointerToPath(ve.InstanceLocation)
		if path == "" {
			*errs = append(*errs, errors.New(ve.Message))
			return
		}
		*errs = append(*errs, fmt.Errorf("%s: %s", path, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}
