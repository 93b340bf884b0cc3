package behavior

import (
	"reflect"
	"testing"
)

func TestEvaluateSuccess(t *testing.T) {
	s := Submission{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hi",
		Message: "Hello",
	}

	out := Evaluate(s)
	if !out.Valid {
		t.Fatalf("Evaluate(%+v).Valid = false, want true", s)
	}
	if !out.Reset {
		t.Error("accepted submission must reset the form")
	}
	want := "Thank you Ada! Your message has been received. We'll get back to you at ada@example.com soon!"
	if out.Message != want {
		t.Errorf("Message = %q, want %q", out.Message, want)
	}
	if len(out.Missing) != 0 {
		t.Errorf("Missing = %v, want none", out.Missing)
	}
}

func TestEvaluateMissingFields(t *testing.T) {
	full := Submission{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}

	tests := []struct {
		name    string
		mutate  func(*Submission)
		missing []Field
	}{
		{
			name:    "empty_name",
			mutate:  func(s *Submission) { s.Name = "" },
			missing: []Field{FieldName},
		},
		{
			name:    "empty_email",
			mutate:  func(s *Submission) { s.Email = "" },
			missing: []Field{FieldEmail},
		},
		{
			name:    "empty_subject",
			mutate:  func(s *Submission) { s.Subject = "" },
			missing: []Field{FieldSubject},
		},
		{
			name:    "empty_message",
			mutate:  func(s *Submission) { s.Message = "" },
			missing: []Field{FieldMessage},
		},
		{
			name:    "all_empty",
			mutate:  func(s *Submission) { *s = Submission{} },
			missing: []Field{FieldName, FieldEmail, FieldSubject, FieldMessage},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := full
			tc.mutate(&s)

			out := Evaluate(s)
			if out.Valid {
				t.Fatal("Evaluate accepted a submission with missing fields")
			}
			if out.Reset {
				t.Error("rejected submission must leave the form untouched")
			}
			if out.Message != FillAllMessage {
				t.Errorf("Message = %q, want %q", out.Message, FillAllMessage)
			}
			if !reflect.DeepEqual(out.Missing, tc.missing) {
				t.Errorf("Missing = %v, want %v", out.Missing, tc.missing)
			}
		})
	}
}

func TestEvaluateWhitespaceIsPresent(t *testing.T) {
	// The required check is plain truthiness on the raw value: a field of
	// only whitespace counts as present.
	s := Submission{Name: " ", Email: "\t", Subject: "x", Message: "\n"}

	out := Evaluate(s)
	if !out.Valid {
		t.Errorf("whitespace-only fields rejected: missing=%v", out.Missing)
	}
}

func TestSuccessMessageInterpolation(t *testing.T) {
	got := SuccessMessage("Grace Hopper", "grace@navy.mil")
	want := "Thank you Grace Hopper! Your message has been received. We'll get back to you at grace@navy.mil soon!"
	if got != want {
		t.Errorf("SuccessMessage = %q, want %q", got, want)
	}
}

func TestSubmissionFromFields(t *testing.T) {
	s := SubmissionFromFields(map[string]string{
		"name":    "Ada",
		"email":   "ada@example.com",
		"subject": "Hi",
		"message": "Hello",
		"extra":   "ignored",
	})

	want := Submission{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}
	if s != want {
		t.Errorf("SubmissionFromFields = %+v, want %+v", s, want)
	}

	// Absent keys read as empty and therefore missing.
	empty := SubmissionFromFields(nil)
	if got := empty.Missing(); len(got) != len(Fields) {
		t.Errorf("nil fields Missing() = %v, want all of %v", got, Fields)
	}
}
