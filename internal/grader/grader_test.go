package grader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nmsltll12138/pathology-quiz/internal/bank"
)

func single(text string) bank.Answer {
	return bank.Answer{Kind: bank.AnswerSingle, Text: text}
}

func multiple(set ...string) bank.Answer {
	return bank.Answer{Kind: bank.AnswerMultiple, Set: set}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim and collapse", "  细胞  水肿  ", "细胞 水肿"},
		{"cjk punctuation", "肝脏，合成。（蛋白质）；略：", "肝脏,合成.(蛋白质);略:"},
		{"full-width ascii", "ＡＢＤ", "abd"},
		{"case fold", "Edema", "edema"},
		{"ideographic space", "甲　乙", "甲 乙"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestGradeSingle(t *testing.T) {
	g := New(DefaultConfig())

	assert.Equal(t, Correct, g.GradeSingle("A", single("A")))
	assert.Equal(t, Incorrect, g.GradeSingle("B", single("A")))
	assert.Equal(t, Correct, g.GradeSingle(" 细胞水肿 ", single("细胞水肿")))
	assert.Equal(t, Correct, g.GradeSingle("ａ", single("A")), "full-width folds to stored")
	assert.Equal(t, Ungraded, g.GradeSingle("A", bank.Answer{}))
	assert.Equal(t, Ungraded, g.GradeSingle("A", single("   ")))
}

func TestGradeMultiple(t *testing.T) {
	g := New(DefaultConfig())

	tests := []struct {
		name    string
		choices []string
		stored  bank.Answer
		want    Result
	}{
		{"order independent", []string{"A", "B"}, multiple("B", "A"), Correct},
		{"missing one", []string{"A"}, multiple("B", "A"), Incorrect},
		{"extra one", []string{"A", "B", "C"}, multiple("B", "A"), Incorrect},
		{"letter run stored as string", []string{"A", "B", "D"}, single("ABD"), Correct},
		{"delimited stored string", []string{"萎缩", "肥大"}, single("萎缩，肥大"), Correct},
		{"duplicate selections collapse", []string{"A", "A", "B"}, multiple("A", "B"), Correct},
		{"empty stored", []string{"A"}, bank.Answer{}, Ungraded},
		{"blank stored string", []string{"A"}, single(" "), Ungraded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.GradeMultiple(tt.choices, tt.stored))
		})
	}
}

func TestGradeShort(t *testing.T) {
	g := New(DefaultConfig())
	stored := single("肝脏;合成蛋白质;分泌胆汁")

	// Two of three keyword fragments (66%) is below the 0.8 threshold.
	assert.Equal(t, Incorrect, g.GradeShort("肝脏合成蛋白质", stored))

	// All three fragments present.
	assert.Equal(t, Correct, g.GradeShort("肝脏可以合成蛋白质并分泌胆汁", stored))

	// Exact normalized match short-circuits fragment coverage.
	assert.Equal(t, Correct, g.GradeShort(" 肝脏；合成蛋白质；分泌胆汁 ", stored))

	// Empty submission with a stored answer is always incorrect.
	assert.Equal(t, Incorrect, g.GradeShort("", stored))
	assert.Equal(t, Incorrect, g.GradeShort("   ", stored))

	// No stored answer or placeholder marker: ungraded.
	assert.Equal(t, Ungraded, g.GradeShort("任何内容", bank.Answer{}))
	assert.Equal(t, Ungraded, g.GradeShort("任何内容", single("暂无答案")))
	assert.Equal(t, Ungraded, g.GradeShort("任何内容", single("略")))
}

func TestGradeShort_ThresholdConfigurable(t *testing.T) {
	lenient := New(Config{KeywordThreshold: 0.5, MinFragmentLen: 2})
	stored := single("肝脏;合成蛋白质;分泌胆汁")

	// 2/3 coverage passes a 0.5 threshold.
	assert.Equal(t, Correct, lenient.GradeShort("肝脏合成蛋白质", stored))
}

func TestGrade_DispatchAndIdempotence(t *testing.T) {
	g := New(DefaultConfig())

	sub := Submission{Choices: []string{"A", "B"}}
	stored := multiple("B", "A")

	first := g.Grade(bank.Multiple, sub, stored)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, g.Grade(bank.Multiple, sub, stored))
	}
	assert.Equal(t, Correct, first)

	assert.Equal(t, Correct, g.Grade(bank.Single, Submission{Choice: "A"}, single("A")))
	assert.Equal(t, Incorrect, g.Grade(bank.Short, Submission{Text: "无关内容"}, single("凝固性坏死")))
}

func TestNew_ZeroConfigFallsBack(t *testing.T) {
	g := New(Config{})
	assert.Equal(t, DefaultConfig(), g.cfg)

	g = New(Config{KeywordThreshold: 1.5})
	assert.Equal(t, DefaultConfig().KeywordThreshold, g.cfg.KeywordThreshold)
}
