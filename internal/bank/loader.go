package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DiagnosticCourse groups synthetic records for files that failed to load.
const DiagnosticCourse = "加载失败"

// LoadError is the fatal startup failure: the bank directory is missing
// or produced zero usable records.
type LoadError struct {
	Dir    string
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load question bank from %s: %s", e.Dir, e.Reason)
}

// Diagnostic describes a bank document that could not be loaded.
type Diagnostic struct {
	File string
	Err  error
}

// Load reads every *.json document in dir into a Library.
//
// Each document is either a list of question objects or an object whose
// "data" field holds the list. A document that fails to parse does not
// abort the load: it is replaced by one synthetic record naming the file,
// and loading continues. Load fails only when dir does not exist or no
// usable records were produced.
func Load(dir string) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, &LoadError{Dir: dir, Reason: "directory not found"}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{Dir: dir, Reason: err.Error()}
	}

	var records []Record
	var diags []Diagnostic
	usable := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		name := entry.Name()

		recs, err := loadFile(filepath.Join(dir, name), name)
		if err != nil {
			diags = append(diags, Diagnostic{File: name, Err: err})
			records = append(records, diagnosticRecord(name, err))
			continue
		}
		usable += len(recs)
		records = append(records, recs...)
	}

	if usable == 0 {
		return nil, &LoadError{Dir: dir, Reason: "no usable question records in *.json documents"}
	}

	return &Library{records: records, diags: diags}, nil
}

// loadFile parses one bank document into records.
func loadFile(path, name string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	// Some exports wrap the list as {"data": [...]}.
	if obj, ok := doc.(map[string]any); ok {
		doc = obj["data"]
	}

	list, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("document is not a question list")
	}

	records := make([]Record, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue // tolerate stray non-object entries
		}
		b, err := json.Marshal(obj)
		if err != nil {
			continue
		}
		var raw rawRecord
		if err := json.Unmarshal(b, &raw); err != nil {
			continue
		}
		rec := raw.toRecord(name)
		if rec.Prompt == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// diagnosticRecord builds the synthetic record substituted for a file
// that failed to load, so the failure stays visible while drilling.
func diagnosticRecord(file string, err error) Record {
	return Record{
		Course:     DiagnosticCourse,
		Chapter:    file,
		Type:       Short,
		Prompt:     fmt.Sprintf("题库文件 %s 加载失败：%v", file, err),
		Answer:     Answer{Kind: AnswerNone},
		SourceFile: file,
		Diagnostic: true,
	}
}

// Library is the immutable loaded question set plus per-file diagnostics.
type Library struct {
	records []Record
	diags   []Diagnostic
}

// NewLibrary builds a Library from preloaded records. Used by tests and
// by callers that assemble records without the file loader.
func NewLibrary(records []Record) *Library {
	return &Library{records: records}
}

// Records returns all loaded records in load order.
func (l *Library) Records() []Record { return l.records }

// Diagnostics returns the per-file load failures.
func (l *Library) Diagnostics() []Diagnostic { return l.diags }

// Len returns the total record count.
func (l *Library) Len() int { return len(l.records) }

// Courses returns the sorted distinct course names.
func (l *Library) Courses() []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range l.records {
		if !seen[r.Course] {
			seen[r.Course] = true
			out = append(out, r.Course)
		}
	}
	sort.Strings(out)
	return out
}

// Chapters returns the sorted distinct chapters within a course.
// An empty course selects across all courses.
func (l *Library) Chapters(course string) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range l.records {
		if course != "" && r.Course != course {
			continue
		}
		if !seen[r.Chapter] {
			seen[r.Chapter] = true
			out = append(out, r.Chapter)
		}
	}
	sort.Strings(out)
	return out
}

// Types returns the distinct question types within course+chapter, in
// canonical order. Empty selections mean "all".
func (l *Library) Types(course, chapter string) []QType {
	seen := map[QType]bool{}
	for _, r := range l.records {
		if course != "" && r.Course != course {
			continue
		}
		if chapter != "" && r.Chapter != chapter {
			continue
		}
		seen[r.Type] = true
	}
	var out []QType
	for _, t := range AllQTypes() {
		if seen[t] {
			out = append(out, t)
		}
	}
	return out
}

// Filter returns the records matching sig, preserving load order.
// An empty result is a valid state, not an error.
func (l *Library) Filter(sig Signature) []Record {
	var out []Record
	for _, r := range l.records {
		if sig.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
