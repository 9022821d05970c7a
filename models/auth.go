// models/auth.go

package models

import "time"

// SendCodeRequest starts the portal login flow with a free-form
// identifier (email or phone).
type SendCodeRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// SendCodeResponse tells the portal which channel was used without
// revealing the full destination.
type SendCodeResponse struct {
	Message           string    `json:"message"`
	IdentifierType    string    `json:"identifier_type"`
	MaskedDestination string    `json:"masked_destination"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// VerifyCodeRequest submits the 6-digit code for the identifier
type VerifyCodeRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code" validate:"required,len=6,numeric"`
}

// VerifyCodeResponse carries the minted session and the denormalized
// approver/client identity for the portal's redirect logic.
type VerifyCodeResponse struct {
	Success      bool        `json:"success"`
	SessionToken string      `json:"session_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
	Approver     ApproverRef `json:"approver"`
	Client       ClientRef   `json:"client"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
