package behavior

import "fmt"

// Field identifies one contact form field by its stable key.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Fields lists the contact form fields in their fixed document order.
var Fields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Placeholder strings the stock markup carries on its text inputs. Field
// lookup prefers stable name keys; these remain the compatibility fallback
// for markup that only labels inputs by placeholder.
const (
	PlaceholderName    = "Your Name"
	PlaceholderEmail   = "Your Email"
	PlaceholderSubject = "Subject"
)

// FillAllMessage is the acknowledgement shown when any field is missing.
const FillAllMessage = "Please fill in all fields before submitting."

// SuccessMessage renders the acknowledgement for an accepted submission.
func SuccessMessage(name, email string) string {
	return fmt.Sprintf("Thank you %s! Your message has been received. We'll get back to you at %s soon!", name, email)
}

// Submission is the four-value snapshot read from the contact form at the
// moment of submission. It lives no longer than the handling of that one
// submit action.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// SubmissionFromFields builds a Submission from a submitted field map
// keyed by the stable field keys. Absent keys read as empty, which the
// validation treats as missing.
func SubmissionFromFields(fields map[string]string) Submission {
	return Submission{
		Name:    fields[string(FieldName)],
		Email:   fields[string(FieldEmail)],
		Subject: fields[string(FieldSubject)],
		Message: fields[string(FieldMessage)],
	}
}

// Field returns the value for a field key.
func (s Submission) Field(f Field) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldSubject:
		return s.Subject
	case FieldMessage:
		return s.Message
	}
	return ""
}

// Missing returns the fields that fail the required check, in document
// order. The check is plain truthiness on the raw value: only the empty
// string counts as missing, whitespace does not.
func (s Submission) Missing() []Field {
	var missing []Field
	for _, f := range Fields {
		if s.Field(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Outcome is the decision for one submission: whether it was accepted, the
// exact acknowledgement to surface, and whether the form resets afterward.
type Outcome struct {
	Valid   bool
	Missing []Field
	Message string
	Reset   bool
}

// Evaluate validates a submission and produces its outcome. An accepted
// submission acknowledges with the interpolated success template and
// resets the form; a rejected one acknowledges with FillAllMessage and
// leaves every field untouched for correction.
func Evaluate(s Submission) Outcome {
	missing := s.Missing()
	if len(missing) > 0 {
		return Outcome{
			Missing: missing,
			Message: FillAllMessage,
		}
	}
	return Outcome{
		Valid:   true,
		Message: SuccessMessage(s.Name, s.Email),
		Reset:   true,
	}
}
