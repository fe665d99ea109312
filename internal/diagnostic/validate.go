package diagnostic

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)
)

// ValidEmail reports whether s has the local@domain.tld shape accepted for
// submissions and lookups.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// SubmissionInput is the raw payload of a diagnostic form submission. Score
// fields are pointers so that missing and zero are distinguishable.
type SubmissionInput struct {
	Name                   string
	Email                  string
	Phone                  string
	ClarityDirection       *float64
	EmotionalMastery       *float64
	EnergyFocus            *float64
	SelfLeadership         *float64
	InfluenceCommunication *float64
	ChangeAdaptability     *float64
}

// Submission is a validated, normalized submission: strings trimmed, email
// lowercased, all six scores present and in range.
type Submission struct {
	Name   string
	Email  string
	Phone  string
	Scores Scores
}

// ValidateSubmission checks presence, shape and score ranges, and returns
// the normalized submission. It has no side effects.
func ValidateSubmission(in SubmissionInput) (Submission, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Submission{}, fmt.Errorf("name is required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return Submission{}, fmt.Errorf("email is required")
	}
	if !emailRe.MatchString(email) {
		return Submission{}, fmt.Errorf("invalid email format")
	}

	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !phoneRe.MatchString(phone) {
		return Submission{}, fmt.Errorf("invalid phone format")
	}

	raw := [6]*float64{
		in.ClarityDirection,
		in.EmotionalMastery,
		in.EnergyFocus,
		in.SelfLeadership,
		in.InfluenceCommunication,
		in.ChangeAdaptability,
	}
	var values [6]float64
	for i, p := range CanonicalOrder {
		v := raw[i]
		if v == nil {
			return Submission{}, fmt.Errorf("missing score for %s", p)
		}
		// NaN passes both range comparisons, so it needs its own check.
		if math.IsNaN(*v) || *v < ScoreMin || *v > ScoreMax {
			return Submission{}, fmt.Errorf("score for %s must be between %g and %g", p, ScoreMin, ScoreMax)
		}
		values[i] = *v
	}

	return Submission{
		Name:  name,
		Email: email,
		Phone: phone,
		Scores: Scores{
			ClarityDirection:       values[0],
			EmotionalMastery:       values[1],
			EnergyFocus:            values[2],
			SelfLeadership:         values[3],
			InfluenceCommunication: values[4],
			ChangeAdaptability:     values[5],
		},
	}, nil
}
