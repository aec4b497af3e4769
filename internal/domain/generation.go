package domain

// GenerationConfig is built once per generation request and passed by value
// to the prompt builder and the response validator. Nothing reads generation
// settings from shared state.
type GenerationConfig struct {
	QuestionType     QuizType
	QuestionCount    int
	Difficulty       string
	Language         string
	TokenBudget      int
	SummaryMaxTokens int
	QuizMaxTokens    int
	Temperature      float64
	PassingScore     int
}

// Validate validates the generation config
func (c GenerationConfig) Validate() error {
	if _, ok := ParseQuizType(string(c.QuestionType)); !ok {
		return NewBadInputError("unsupported question type: " + string(c.QuestionType))
	}
	if c.QuestionCount <= 0 {
		return NewBadInputError("question count must be positive")
	}
	if c.TokenBudget <= 0 {
		return NewBadInputError("token budget must be positive")
	}
	return nil
}

// SummaryResult is the parsed output of the summary stage.
type SummaryResult struct {
	Summary    string
	KeyPoints  []string
	Topics     []string
	Language   string
	Complexity Complexity
}

// GeneratedCollection is the validated output of the quiz stage. Every quiz
// in it carries at least one question.
type GeneratedCollection struct {
	Quizzes []GeneratedQuiz
	Dropped int
}

// GeneratedQuiz is a validated quiz before persistence.
type GeneratedQuiz struct {
	Title      string
	Type       QuizType
	Difficulty string
	Questions  []Question
}

// QuestionCount sums the questions of every quiz in the collection.
func (c *GeneratedCollection) QuestionCount() int {
	n := 0
	for _, q := range c.Quizzes {
		n += len(q.Questions)
	}
	return n
}
