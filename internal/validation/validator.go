package validation

import (
	"regexp"
	"strconv"
	"strings"

	"quiz-progression/internal/domain"
	"quiz-progression/internal/util"
)

const (
	maxIdentifierLength = 64
	maxWeekNumber       = 520
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateIdentifier checks a course or student identifier.
func (v *Validator) ValidateIdentifier(field, value string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(value) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
		return errors
	}
	if !isValidIdentifier(value) {
		errors = append(errors, domain.NewInvalidFormatError(field, value))
	}
	return errors
}

// ParseWeek parses a week path parameter.
func (v *Validator) ParseWeek(raw string) (int, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("week")}
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("week", raw)}
	}
	if week < 1 || week > maxWeekNumber {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("week", week, 1, maxWeekNumber)}
	}
	return week, nil
}

// ValidateAnswers rejects negative option indexes. Range checks against the
// question happen at grading time.
func (v *Validator) ValidateAnswers(answers map[string]int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	for qid, opt := range answers {
		if strings.TrimSpace(qid) == "" {
			errors = append(errors, domain.NewInvalidFormatError("answers", "empty question id"))
			continue
		}
		if opt < 0 {
			errors = append(errors, domain.NewInvalidFormatError("answers."+qid, opt))
		}
	}
	return errors
}

// ValidateQuizSubmission validates the submit quiz request.
func (v *Validator) ValidateQuizSubmission(studentID, quizID, variant string, answers map[string]int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.ValidateIdentifier("student_id", studentID)...)

	if strings.TrimSpace(quizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("quiz_id"))
	} else if !util.IsULID(quizID) {
		errors = append(errors, domain.NewInvalidFormatError("quiz_id", quizID))
	}

	if variant != "" && !domain.Variant(variant).Valid() {
		errors = append(errors, domain.NewInvalidFormatError("variant", variant))
	}

	errors = append(errors, v.ValidateAnswers(answers)...)
	return errors
}

// ValidatePretestSubmission validates the submit pretest request.
func (v *Validator) ValidatePretestSubmission(studentID, pretestID string, answers map[string]int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.ValidateIdentifier("student_id", studentID)...)
	if strings.TrimSpace(pretestID) == "" {
		errors = append(errors, domain.NewMissingFieldError("pretest_id"))
	}
	errors = append(errors, v.ValidateAnswers(answers)...)
	return errors
}

// ValidateStartSession validates the start session request.
func (v *Validator) ValidateStartSession(studentID, courseID string, week int, variant string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.ValidateIdentifier("student_id", studentID)...)
	errors = append(errors, v.ValidateIdentifier("course_id", courseID)...)
	if week < 1 || week > maxWeekNumber {
		errors = append(errors, domain.NewOutOfRangeError("week_number", week, 1, maxWeekNumber))
	}
	if strings.TrimSpace(variant) == "" {
		errors = append(errors, domain.NewMissingFieldError("variant"))
	} else if !domain.Variant(variant).Valid() {
		errors = append(errors, domain.NewInvalidFormatError("variant", variant))
	}
	return errors
}

// isValidIdentifier allows alphanumerics, dots, hyphens and underscores, 1-64 characters
func isValidIdentifier(s string) bool {
	if len(s) == 0 || len(s) > maxIdentifierLength {
		return false
	}
	return identifierPattern.MatchString(s)
}
