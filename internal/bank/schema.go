package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema is the JSON Schema every bank document must satisfy in
// strict mode: a list of question objects (or the {"data": [...]} wrap),
// each with at least a prompt, choice questions carrying string options.
const documentSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"oneOf": [
		{"$ref": "#/$defs/questionList"},
		{
			"type": "object",
			"required": ["data"],
			"properties": {"data": {"$ref": "#/$defs/questionList"}}
		}
	],
	"$defs": {
		"questionList": {
			"type": "array",
			"items": {"$ref": "#/$defs/question"}
		},
		"question": {
			"type": "object",
			"required": ["question"],
			"properties": {
				"course": {"type": "string"},
				"chapter": {"type": "string"},
				"qtype": {"type": "string"},
				"question": {"type": "string", "minLength": 1},
				"options": {"type": "array", "items": {"type": "string"}},
				"answer": {
					"oneOf": [
						{"type": "string"},
						{"type": "number"},
						{"type": "array", "items": {"type": "string"}},
						{"type": "null"}
					]
				},
				"explanation": {"type": "string"}
			}
		}
	}
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiledDocumentSchema compiles the document schema once and caches it.
func compiledDocumentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(documentSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const schemaURL = "schema://bank-document.json"
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// FileReport is the strict-validation outcome for one bank document.
type FileReport struct {
	File    string
	Records int
	Err     error
}

// OK reports whether the document passed validation.
func (r FileReport) OK() bool { return r.Err == nil }

// Check validates every *.json document in dir against the bank document
// schema. Unlike Load it does not tolerate malformed files; it reports
// them. Returns one report per document in directory order.
func Check(dir string) ([]FileReport, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, &LoadError{Dir: dir, Reason: "directory not found"}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Reason: err.Error()}
	}

	schema, err := compiledDocumentSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank document schema: %w", err)
	}

	var reports []FileReport
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		reports = append(reports, checkFile(schema, dir, entry.Name()))
	}
	return reports, nil
}

func checkFile(schema *jsonschema.Schema, dir, name string) FileReport {
	report := FileReport{File: name}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		report.Err = fmt.Errorf("read: %w", err)
		return report
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		report.Err = fmt.Errorf("invalid JSON: %w", err)
		return report
	}

	if err := schema.Validate(doc); err != nil {
		report.Err = fmt.Errorf("schema validation failed: %w", err)
		return report
	}

	if obj, ok := doc.(map[string]any); ok {
		doc = obj["data"]
	}
	if list, ok := doc.([]any); ok {
		report.Records = len(list)
	}
	return report
}
