package types

import (
	"time"
)

// Answers maps a question key to the model's answer, or to an
// "Error: ..." string when that question failed.
type Answers map[string]string

// NewAnswers returns an Answers with every key of qs present and empty.
func NewAnswers(qs QuestionSet) Answers {
	a := make(Answers, len(qs))
	for _, q := range qs {
		a[q.Key] = ""
	}
	return a
}

// Has returns true if the key exists.
func (a Answers) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// Row returns the answers ordered by qs. Missing keys yield empty cells.
func (a Answers) Row(qs QuestionSet) []string {
	row := make([]string, len(qs))
	for i, q := range qs {
		row[i] = a[q.Key]
	}
	return row
}

// Entry is one row of a Report.
type Entry struct {
	URL       string
	Answers   Answers
	Skipped   bool
	Timestamp time.Time
}

// Report accumulates per-site answers in insertion order.
type Report struct {
	entries []*Entry
	index   map[string]int
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{index: make(map[string]int)}
}

// Add records answers for url. Adding the same URL again replaces its
// answers but keeps its original position.
func (r *Report) Add(url string, answers Answers) {
	r.put(&Entry{URL: url, Answers: answers, Timestamp: time.Now()})
}

// AddSkipped records url as a site whose scrape produced no text.
func (r *Report) AddSkipped(url string, qs QuestionSet) {
	r.put(&Entry{URL: url, Answers: NewAnswers(qs), Skipped: true, Timestamp: time.Now()})
}

func (r *Report) put(e *Entry) {
	if i, ok := r.index[e.URL]; ok {
		r.entries[i] = e
		return
	}
	r.index[e.URL] = len(r.entries)
	r.entries = append(r.entries, e)
}

// Get returns the answers for url.
func (r *Report) Get(url string) (Answers, bool) {
	i, ok := r.index[url]
	if !ok {
		return nil, false
	}
	return r.entries[i].Answers, true
}

// Entries returns the entries in insertion order.
func (r *Report) Entries() []*Entry {
	return r.entries
}

// Len returns the number of entries.
func (r *Report) Len() int {
	return len(r.entries)
}

// Rows returns the full table body: URL followed by answers ordered by qs.
func (r *Report) Rows(qs QuestionSet) [][]string {
	rows := make([][]string, 0, len(r.entries))
	for _, e := range r.entries {
		row := make([]string, 0, len(qs)+1)
		row = append(row, e.URL)
		row = append(row, e.Answers.Row(qs)...)
		rows = append(rows, row)
	}
	return rows
}
