package verification

import (
	"testing"

	"evrental/internal/models"
)

func allDocs() models.DocumentPaths {
	return models.DocumentPaths{
		CCCDFront: "u/1/cccd-front.jpg",
		CCCDBack:  "u/1/cccd-back.jpg",
		GPLXFront: "u/1/gplx-front.jpg",
		GPLXBack:  "u/1/gplx-back.jpg",
		Portrait:  "u/1/portrait.jpg",
	}
}

func TestDisplayStateDependsOnStatusAndDocuments(t *testing.T) {
	partial := allDocs()
	partial.Portrait = ""

	cases := []struct {
		name   string
		status models.VerificationStatus
		docs   models.DocumentPaths
		want   DisplayState
	}{
		{"pending no docs", models.VerificationPending, models.DocumentPaths{}, StateNotSubmitted},
		{"pending partial docs", models.VerificationPending, partial, StateNotSubmitted},
		{"pending all docs", models.VerificationPending, allDocs(), StatePendingReview},
		{"approved", models.VerificationApproved, allDocs(), StateApproved},
		{"rejected", models.VerificationRejected, allDocs(), StateRejected},
	}

	for _, tt := range cases {
		if got := DisplayStateFor(tt.status, tt.docs); got != tt.want {
			t.Fatalf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestCanBook(t *testing.T) {
	if CanBook(models.VerificationPending) {
		t.Fatal("pending users must not book")
	}
	if !CanBook(models.VerificationApproved) {
		t.Fatal("approved users must book")
	}
}
