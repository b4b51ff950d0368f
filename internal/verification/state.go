package verification

import "evrental/internal/models"

// DisplayState is what the profile screen shows for identity review. It is
// a function of both the server status and the uploaded documents: PENDING
// alone does not mean a review is underway.
type DisplayState string

const (
	StateNotSubmitted  DisplayState = "NOT_SUBMITTED"
	StatePendingReview DisplayState = "PENDING_REVIEW"
	StateApproved      DisplayState = "APPROVED"
	StateRejected      DisplayState = "REJECTED"
)

// DisplayStateFor derives the sub-state shown to the user.
func DisplayStateFor(status models.VerificationStatus, docs models.DocumentPaths) DisplayState {
	switch status {
	case models.VerificationApproved:
		return StateApproved
	case models.VerificationRejected:
		return StateRejected
	default:
		if docs.Complete() {
			return StatePendingReview
		}
		return StateNotSubmitted
	}
}

// CanBook reports whether the verification lifecycle permits creating
// bookings.
func CanBook(status models.VerificationStatus) bool {
	return status == models.VerificationApproved
}
