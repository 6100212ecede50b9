// Package seed turns JSON question banks into tests and loads them, together
// with the demo accounts, into the database.
package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lshigami/examprep/internal/model"
	"gorm.io/datatypes"
)

const (
	defaultSetID      = "default_set"
	defaultSetName    = "Standard Set"
	defaultDifficulty = "Medium"
	seededTotalMarks  = 100
	seededMarks       = 2
)

// BankQuestion is one entry of a question bank file.
type BankQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
	SetID         string   `json:"set_id"`
	SetName       string   `json:"set_name"`
}

// Subject describes one bank file and how its tests are titled.
type Subject struct {
	File         string `mapstructure:"file"`
	Name         string `mapstructure:"name"`
	TitlePrefix  string `mapstructure:"title_prefix"`
	DefaultTopic string `mapstructure:"default_topic"`
}

// DefaultSubjects is used when no manifest is given.
var DefaultSubjects = []Subject{
	{File: "full_math_quiz.json", Name: "Mathematics", TitlePrefix: "CSCA Mathematics Mock", DefaultTopic: "Algebra & Calculus"},
	{File: "full_physics_quiz.json", Name: "Physics", TitlePrefix: "CSCA Physics Mock", DefaultTopic: "General Physics"},
	{File: "full_chemistry_quiz.json", Name: "Chemistry", TitlePrefix: "CSCA Chemistry Mock", DefaultTopic: "General Chemistry"},
	{File: "generated_math_questions.json", Name: "Mathematics", TitlePrefix: "CSCA Extra Math", DefaultTopic: "General Math"},
	{File: "generated_physics_questions.json", Name: "Physics", TitlePrefix: "CSCA Extra Physics", DefaultTopic: "General Physics"},
	{File: "generated_chemistry_questions.json", Name: "Chemistry", TitlePrefix: "CSCA Extra Chemistry", DefaultTopic: "General Chemistry"},
	{File: "generated_chinese_humanities_15_sets.json", Name: "Professional Chinese (Humanities)", TitlePrefix: "CSCA Prof. Chinese (Arts)", DefaultTopic: "General Humanities"},
	{File: "generated_chinese_science_questions.json", Name: "Professional Chinese (Science)", TitlePrefix: "CSCA Prof. Chinese (Sci/Eng)", DefaultTopic: "General Science Chinese"},
}

func LoadBank(r io.Reader) ([]BankQuestion, error) {
	var bank []BankQuestion
	if err := json.NewDecoder(r).Decode(&bank); err != nil {
		return nil, fmt.Errorf("failed to decode question bank: %w", err)
	}
	return bank, nil
}

// BuildTests groups the bank by set, keeping the order in which sets first
// appear, and builds one test per set.
func BuildTests(subject Subject, bank []BankQuestion) []model.Test {
	var order []string
	sets := make(map[string]*model.Test)

	for _, q := range bank {
		setID := q.SetID
		if setID == "" {
			setID = defaultSetID
		}
		test, ok := sets[setID]
		if !ok {
			setName := q.SetName
			if setName == "" {
				setName = defaultSetName
			}
			test = &model.Test{
				Title:      subject.TitlePrefix + " " + setName,
				Subject:    subject.Name,
				Duration:   durationFor(subject.Name),
				TotalMarks: seededTotalMarks,
			}
			sets[setID] = test
			order = append(order, setID)
		}
		test.Questions = append(test.Questions, buildQuestion(q, subject.DefaultTopic))
	}

	tests := make([]model.Test, 0, len(order))
	for _, id := range order {
		tests = append(tests, *sets[id])
	}
	return tests
}

func durationFor(subject string) int {
	if strings.Contains(subject, "Chinese") {
		return 90
	}
	return 60
}

func buildQuestion(q BankQuestion, defaultTopic string) model.Question {
	options := datatypes.JSONSlice[string]{}
	options = append(options, q.Options...)

	difficulty := q.Difficulty
	if difficulty == "" {
		difficulty = defaultDifficulty
	}
	topic := q.Topic
	if topic == "" {
		topic = defaultTopic
	}
	explanation := q.Explanation

	return model.Question{
		Content:     q.Question,
		Options:     options,
		CorrectIdx:  correctIndex(q),
		Marks:       seededMarks,
		Explanation: &explanation,
		Difficulty:  &difficulty,
		Topic:       &topic,
	}
}

// correctIndex falls back to the first option when the answer is missing or
// not one of the options.
func correctIndex(q BankQuestion) int {
	if q.CorrectAnswer == "" {
		return 0
	}
	for i, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return i
		}
	}
	return 0
}
