package service

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sentinel-defense/backend/internal/model"
)

const (
	minNameLength         = 2
	minOrganizationLength = 2
	minInterestLength     = 1
	minMessageLength      = 10
	maxMessageLength      = 5000
)

// emailPattern matches a dotted local part and a domain with a 2+ letter TLD.
// Leading dots and ".." in the local part are rejected separately since RE2
// has no lookahead.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// FieldError describes why one payload field was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError collects every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the failures.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// ContactInput is a payload that passed ValidateContact.
type ContactInput struct {
	Name         string
	Organization string
	Email        string
	Phone        *string
	Interest     string
	Message      string
	Confidential bool
}

// Submission builds an unsaved ContactSubmission from the input.
func (in *ContactInput) Submission() *model.ContactSubmission {
	return &model.ContactSubmission{
		Name:         in.Name,
		Organization: in.Organization,
		Email:        in.Email,
		Phone:        in.Phone,
		Interest:     in.Interest,
		Message:      in.Message,
		Confidential: in.Confidential,
	}
}

// ValidateContact checks a decoded JSON payload against the contact form
// rules. All rules run; the returned error lists every failing field.
// A payload that is not a JSON object yields a single "payload" failure.
func ValidateContact(payload any) (*ContactInput, *ValidationError) {
	verr := &ValidationError{}

	fields, ok := payload.(map[string]any)
	if !ok {
		return nil, MalformedPayload()
	}

	in := &ContactInput{}
	in.Name = requireText(verr, fields, "name", minNameLength)
	in.Organization = requireText(verr, fields, "organization", minOrganizationLength)

	if email, ok := stringField(verr, fields, "email"); ok && !validEmail(email) {
		verr.add("email", "must be a valid email address")
	} else {
		in.Email = email
	}

	if raw, present := fields["phone"]; present && raw != nil {
		phone, isString := raw.(string)
		switch {
		case !isString:
			verr.add("phone", "must be a string")
		case phone != "":
			in.Phone = &phone
		}
	}

	in.Interest = requireText(verr, fields, "interest", minInterestLength)

	in.Message = requireText(verr, fields, "message", minMessageLength)
	if utf8.RuneCountInString(in.Message) > maxMessageLength {
		verr.add("message", "must be at most "+strconv.Itoa(maxMessageLength)+" characters")
	}

	if raw, present := fields["confidential"]; present && raw != nil {
		flag, isBool := raw.(bool)
		if !isBool {
			verr.add("confidential", "must be a boolean")
		}
		in.Confidential = flag
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return in, nil
}

// stringField reads a required string. It records a failure and returns
// ok=false when the field is absent, null or not a string.
func stringField(verr *ValidationError, fields map[string]any, name string) (string, bool) {
	raw, present := fields[name]
	if !present || raw == nil {
		verr.add(name, "is required")
		return "", false
	}
	s, isString := raw.(string)
	if !isString {
		verr.add(name, "must be a string")
		return "", false
	}
	return s, true
}

// requireText reads a required string of at least minLen characters, ignoring
// surrounding whitespace when counting. The value is returned verbatim.
func requireText(verr *ValidationError, fields map[string]any, name string, minLen int) string {
	s, ok := stringField(verr, fields, name)
	if !ok {
		return ""
	}
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	switch {
	case n == 0:
		verr.add(name, "must not be empty")
	case n < minLen:
		verr.add(name, "must be at least "+strconv.Itoa(minLen)+" characters")
	}
	return s
}

func validEmail(s string) bool {
	if !emailPattern.MatchString(s) {
		return false
	}
	local := s[:strings.LastIndexByte(s, '@')]
	return !strings.HasPrefix(local, ".") && !strings.Contains(local, "..")
}

// MalformedPayload is the failure reported when a body cannot be read as a
// JSON object at all.
func MalformedPayload() *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: "payload", Message: "payload malformed"}}}
}
