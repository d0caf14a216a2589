package bank

import (
	"encoding/json"
	"strings"
)

// Fallback labels for records missing course/chapter metadata.
// These match the labels used by the bank export tooling, so records
// from old exports group together with explicitly tagged ones.
const (
	DefaultCourse  = "未命名课程"
	DefaultChapter = "未分章"
)

// QType identifies how a question is answered and graded.
type QType string

const (
	Single   QType = "single"   // one option
	Multiple QType = "multiple" // several options, set-graded
	Short    QType = "short"    // free text
)

// qtypeLabels maps canonical types to the wire labels used in bank files.
var qtypeLabels = map[QType]string{
	Single:   "单选题",
	Multiple: "多选题",
	Short:    "简答题",
}

// Label returns the display label for the type.
func (t QType) Label() string {
	if l, ok := qtypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// AllQTypes lists the question types in canonical display order.
func AllQTypes() []QType {
	return []QType{Single, Multiple, Short}
}

// ParseQType maps a wire label to a canonical QType.
// Returns "" for unrecognized or empty labels (caller should infer).
func ParseQType(s string) QType {
	switch strings.TrimSpace(s) {
	case "单选题", "单选", "single":
		return Single
	case "多选题", "多选", "multiple":
		return Multiple
	case "简答题", "简答", "主观题", "填空题", "short":
		return Short
	}
	return ""
}

// AnswerKind tags the variant held by an Answer.
type AnswerKind int

const (
	AnswerNone     AnswerKind = iota // no stored answer
	AnswerSingle                     // one text value
	AnswerMultiple                   // a set of values
)

// Answer is the stored answer for a record, resolved at ingestion into a
// tagged variant so graders never see the raw string-or-list JSON shape.
type Answer struct {
	Kind AnswerKind
	Text string   // AnswerSingle
	Set  []string // AnswerMultiple
}

// IsEmpty reports whether no usable stored answer exists.
func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case AnswerSingle:
		return strings.TrimSpace(a.Text) == ""
	case AnswerMultiple:
		return len(a.Set) == 0
	}
	return true
}

// Record is a single loaded question. Immutable once loaded.
type Record struct {
	Course      string
	Chapter     string
	Type        QType
	Prompt      string
	Options     []string
	Answer      Answer
	Explanation string

	// SourceFile is the bank document the record came from.
	SourceFile string

	// Diagnostic marks a synthetic record substituted for a file that
	// failed to load.
	Diagnostic bool
}

// rawRecord is the on-disk JSON shape of a question.
type rawRecord struct {
	Course      string          `json:"course"`
	Chapter     string          `json:"chapter"`
	QType       string          `json:"qtype"`
	Question    string          `json:"question"`
	Options     []string        `json:"options"`
	Answer      json.RawMessage `json:"answer"`
	Explanation string          `json:"explanation"`
}

// toRecord resolves defaults, infers the type when the label is missing,
// and normalizes the answer field into its tagged variant.
func (r rawRecord) toRecord(sourceFile string) Record {
	answerList, answerText, answerIsList := decodeAnswer(r.Answer)

	qt := ParseQType(r.QType)
	if qt == "" {
		qt = inferQType(r.Options, answerIsList)
	}

	rec := Record{
		Course:      orDefault(r.Course, DefaultCourse),
		Chapter:     orDefault(r.Chapter, DefaultChapter),
		Type:        qt,
		Prompt:      strings.TrimSpace(r.Question),
		Options:     trimAll(r.Options),
		Explanation: strings.TrimSpace(r.Explanation),
		SourceFile:  sourceFile,
	}
	rec.Answer = resolveAnswer(qt, answerList, answerText, answerIsList)
	return rec
}

// inferQType applies the fallback used by the original bank exports:
// options with a list answer mean multiple choice, options alone mean
// single choice, anything else is a short answer.
func inferQType(options []string, answerIsList bool) QType {
	if len(options) > 0 && answerIsList {
		return Multiple
	}
	if len(options) > 0 {
		return Single
	}
	return Short
}

// resolveAnswer builds the tagged Answer variant for a record.
func resolveAnswer(qt QType, list []string, text string, isList bool) Answer {
	if qt == Multiple {
		set := list
		if !isList {
			set = SplitList(text)
		}
		set = trimAll(set)
		if len(set) == 0 {
			return Answer{Kind: AnswerNone}
		}
		return Answer{Kind: AnswerMultiple, Set: set}
	}

	if isList {
		// A list answer on a single/short question: collapse it.
		list = trimAll(list)
		if len(list) == 0 {
			return Answer{Kind: AnswerNone}
		}
		return Answer{Kind: AnswerSingle, Text: strings.Join(list, "；")}
	}
	if strings.TrimSpace(text) == "" {
		return Answer{Kind: AnswerNone}
	}
	return Answer{Kind: AnswerSingle, Text: strings.TrimSpace(text)}
}

// decodeAnswer reads the dynamic answer field, which may be a string, a
// list of strings, a number, or absent.
func decodeAnswer(raw json.RawMessage) (list []string, text string, isList bool) {
	if len(raw) == 0 {
		return nil, "", false
	}
	var asList []string
	if err := json.Unmarshal(raw, &asList); err == nil {
		return asList, "", true
	}
	var asText string
	if err := json.Unmarshal(raw, &asText); err == nil {
		return nil, asText, false
	}
	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return nil, asNumber.String(), false
	}
	return nil, "", false
}

// listDelimiters are the separators accepted in delimited answer strings.
const listDelimiters = "，,、；;"

// letterRunMax caps how long a string can be and still be read as a run
// of option letters ("ABD").
const letterRunMax = 10

// SplitList splits a stored answer string into a set of values.
// A short run of option letters ("ABD", "A,B,D") splits per letter;
// anything else splits on Chinese/ASCII list delimiters and whitespace.
func SplitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if letters := splitLetterRun(s); letters != nil {
		return letters
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(listDelimiters, r) || isSpace(r)
	})
	return trimAll(parts)
}

// splitLetterRun returns the individual letters of an option-letter run,
// or nil if s is not one.
func splitLetterRun(s string) []string {
	stripped := strings.Map(func(r rune) rune {
		if r == ',' || r == '，' || r == '、' || isSpace(r) {
			return -1
		}
		return r
	}, strings.ToUpper(s))

	if stripped == "" || len(stripped) > letterRunMax {
		return nil
	}
	for _, r := range stripped {
		if r < 'A' || r > 'H' {
			return nil
		}
	}
	out := make([]string, 0, len(stripped))
	for _, r := range stripped {
		out = append(out, string(r))
	}
	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '　'
}

func orDefault(s, def string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return def
}

// trimAll trims each element and drops the ones left empty.
func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
