package types

// Question is a single business-profile question asked of every site.
type Question struct {
	// Key identifies the answer in Answers (e.g. "mission_statement").
	Key string `mapstructure:"key" yaml:"key"`

	// Text is the natural-language question sent to the model.
	Text string `mapstructure:"text" yaml:"text"`

	// Column is the report header for this answer.
	Column string `mapstructure:"column" yaml:"column"`
}

// QuestionSet is an ordered list of questions. Order drives both the
// completion sequence and the report column order.
type QuestionSet []Question

// DefaultQuestions returns the six standard company-profile questions.
func DefaultQuestions() QuestionSet {
	return QuestionSet{
		{Key: "mission_statement", Text: "What is the company's mission statement or core values?", Column: "Mission Statement"},
		{Key: "products_services", Text: "What products or services does the company offer?", Column: "Products/Services"},
		{Key: "company_founded", Text: "When was the company founded, and who were the founders?", Column: "Founded"},
		{Key: "headquarters_location", Text: "Where is the company's headquarters located?", Column: "Headquarters"},
		{Key: "key_executives", Text: "Who are the key executives or leadership team members?", Column: "Executives"},
		{Key: "awards_recognitions", Text: "Has the company received any notable awards or recognitions?", Column: "Awards"},
	}
}

// Keys returns the question keys in order.
func (qs QuestionSet) Keys() []string {
	keys := make([]string, len(qs))
	for i, q := range qs {
		keys[i] = q.Key
	}
	return keys
}

// Header returns the report header row: "Website" followed by each column.
func (qs QuestionSet) Header() []string {
	header := make([]string, 0, len(qs)+1)
	header = append(header, "Website")
	for _, q := range qs {
		header = append(header, q.Column)
	}
	return header
}
