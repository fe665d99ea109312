package diagnostic

import (
	"math"
	"strings"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func validInput() SubmissionInput {
	return SubmissionInput{
		Name:                   "Ana Torres",
		Email:                  "Ana.Torres@Example.COM",
		Phone:                  "+52 (55) 1234-5678",
		ClarityDirection:       ptr(7),
		EmotionalMastery:       ptr(6),
		EnergyFocus:            ptr(5),
		SelfLeadership:         ptr(8),
		InfluenceCommunication: ptr(4),
		ChangeAdaptability:     ptr(9),
	}
}

func TestValidateSubmissionNormalizes(t *testing.T) {
	in := validInput()
	in.Name = "  Ana Torres  "
	sub, err := ValidateSubmission(in)
	if err != nil {
		t.Fatalf("ValidateSubmission: %v", err)
	}
	if sub.Name != "Ana Torres" {
		t.Fatalf("name not trimmed: got=%q", sub.Name)
	}
	if sub.Email != "ana.torres@example.com" {
		t.Fatalf("email not lowercased: got=%q", sub.Email)
	}
	if sub.Scores.InfluenceCommunication != 4 {
		t.Fatalf("score not carried: want=4 got=%g", sub.Scores.InfluenceCommunication)
	}
}

func TestValidateSubmissionRejectsBadEmail(t *testing.T) {
	in := validInput()
	in.Email = "not-an-email"
	if _, err := ValidateSubmission(in); err == nil {
		t.Fatalf("expected error for email %q", in.Email)
	}
}

func TestValidateSubmissionRequiresNameAndEmail(t *testing.T) {
	in := validInput()
	in.Name = "   "
	if _, err := ValidateSubmission(in); err == nil {
		t.Fatalf("expected error for blank name")
	}

	in = validInput()
	in.Email = ""
	if _, err := ValidateSubmission(in); err == nil {
		t.Fatalf("expected error for blank email")
	}
}

func TestValidateSubmissionScoreRange(t *testing.T) {
	in := validInput()
	in.EnergyFocus = ptr(11)
	if _, err := ValidateSubmission(in); err == nil {
		t.Fatalf("expected error for score 11")
	}

	in = validInput()
	in.SelfLeadership = ptr(-1)
	if _, err := ValidateSubmission(in); err == nil {
		t.Fatalf("expected error for score -1")
	}
}

func TestValidateSubmissionRejectsNonFiniteScores(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		in := validInput()
		in.EnergyFocus = ptr(v)
		if _, err := ValidateSubmission(in); err == nil {
			t.Fatalf("expected error for score %v", v)
		}
	}
}

func TestValidateSubmissionAcceptsBoundaries(t *testing.T) {
	for _, boundary := range []float64{0, 10} {
		in := validInput()
		in.ClarityDirection = ptr(boundary)
		in.EmotionalMastery = ptr(boundary)
		in.EnergyFocus = ptr(boundary)
		in.SelfLeadership = ptr(boundary)
		in.InfluenceCommunication = ptr(boundary)
		in.ChangeAdaptability = ptr(boundary)
		if _, err := ValidateSubmission(in); err != nil {
			t.Fatalf("boundary %g rejected: %v", boundary, err)
		}
	}
}

func TestValidateSubmissionMissingScore(t *testing.T) {
	in := validInput()
	in.ChangeAdaptability = nil
	_, err := ValidateSubmission(in)
	if err == nil {
		t.Fatalf("expected error for missing score")
	}
	if !strings.Contains(err.Error(), string(PillarChangeAdaptability)) {
		t.Fatalf("error should name the missing pillar: %v", err)
	}
}

func TestValidateSubmissionPhone(t *testing.T) {
	in := validInput()
	in.Phone = "55-1234 ext. 9"
	if _, err := ValidateSubmission(in); err == nil {
		t.Fatalf("expected error for phone with letters")
	}

	in = validInput()
	in.Phone = ""
	if _, err := ValidateSubmission(in); err != nil {
		t.Fatalf("empty phone should be accepted: %v", err)
	}
}
