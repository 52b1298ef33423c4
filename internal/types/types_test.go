package types

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://www.tesla.com", false},
		{"http://example.com/about", false},
		{"ftp://example.com", true},
		{"example.com", true},
		{"https://", true},
	}

	for _, tt := range tests {
		_, err := NewRequest(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewRequest(%q): err = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidURL) {
			t.Errorf("NewRequest(%q): expected ErrInvalidURL, got %v", tt.url, err)
		}
	}
}

func TestQuestionSetHeader(t *testing.T) {
	want := []string{"Website", "Mission Statement", "Products/Services", "Founded", "Headquarters", "Executives", "Awards"}
	got := DefaultQuestions().Header()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("header mismatch:\n got  %v\n want %v", got, want)
	}
}

func TestNewAnswersHasEveryKey(t *testing.T) {
	qs := DefaultQuestions()
	a := NewAnswers(qs)
	if len(a) != len(qs) {
		t.Fatalf("expected %d keys, got %d", len(qs), len(a))
	}
	for _, k := range qs.Keys() {
		if !a.Has(k) {
			t.Errorf("missing key %q", k)
		}
	}
}

func TestReportInsertionOrder(t *testing.T) {
	qs := QuestionSet{{Key: "a", Column: "A"}, {Key: "b", Column: "B"}}
	r := NewReport()
	r.Add("https://z.example", Answers{"a": "z1", "b": "z2"})
	r.Add("https://a.example", Answers{"a": "a1", "b": "a2"})
	r.Add("https://z.example", Answers{"a": "z3", "b": "z4"})

	if r.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", r.Len())
	}

	want := [][]string{
		{"https://z.example", "z3", "z4"},
		{"https://a.example", "a1", "a2"},
	}
	if got := r.Rows(qs); !reflect.DeepEqual(got, want) {
		t.Errorf("rows mismatch:\n got  %v\n want %v", got, want)
	}

	if _, ok := r.Get("https://missing.example"); ok {
		t.Error("expected missing URL to be absent")
	}
}

func TestReportAddSkipped(t *testing.T) {
	qs := DefaultQuestions()
	r := NewReport()
	r.AddSkipped("https://down.example", qs)

	e := r.Entries()[0]
	if !e.Skipped {
		t.Error("expected entry to be marked skipped")
	}
	for _, cell := range r.Rows(qs)[0][1:] {
		if cell != "" {
			t.Errorf("expected blank cell, got %q", cell)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	errs := []error{
		&FetchError{URL: "https://x.example", Err: base},
		&ParseError{URL: "https://x.example", Err: base},
		&CompletionError{Question: "mission_statement", Err: base},
		&StorageError{Backend: "xlsx", Err: base},
	}
	for _, err := range errs {
		if !errors.Is(err, base) {
			t.Errorf("%T does not unwrap to base error", err)
		}
	}
}
