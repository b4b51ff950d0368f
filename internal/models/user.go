package models

import "encoding/json"

// VerificationStatus is the server-driven identity review lifecycle. The
// client reads it, never transitions it.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// DocumentPaths holds the stored locations of the five identity documents.
type DocumentPaths struct {
	CCCDFront string `json:"cccdFront,omitempty"`
	CCCDBack  string `json:"cccdBack,omitempty"`
	GPLXFront string `json:"gplxFront,omitempty"`
	GPLXBack  string `json:"gplxBack,omitempty"`
	Portrait  string `json:"portrait,omitempty"`
}

// Complete reports whether all five documents have been uploaded.
func (d DocumentPaths) Complete() bool {
	return d.CCCDFront != "" && d.CCCDBack != "" && d.GPLXFront != "" && d.GPLXBack != "" && d.Portrait != ""
}

// User is an authenticated principal.
type User struct {
	ID                 int64              `json:"id"`
	FullName           string             `json:"fullName"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone,omitempty"`
	Role               Role               `json:"role"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Documents          DocumentPaths      `json:"documents"`
	StationID          *int64             `json:"stationId,omitempty"`
	Status             string             `json:"status,omitempty"`
}

// UnmarshalJSON normalizes the backend's roleId/roleName duality into the
// canonical Role at the decode boundary. An unknown pair leaves Role empty
// rather than failing the whole decode; callers gate on it explicitly.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		RoleID   int    `json:"roleId"`
		RoleName string `json:"roleName"`
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if u.Role == "" {
		if role, err := NormalizeRole(aux.RoleID, aux.RoleName); err == nil {
			u.Role = role
		}
	}
	return nil
}
