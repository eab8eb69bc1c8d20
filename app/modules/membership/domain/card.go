package membershipdomain

import "time"

const StatusActive = "active"

// Card is the digital membership card shown at the club gate.
type Card struct {
	Number     string    `json:"number" validate:"required"`
	HolderName string    `json:"holder_name" validate:"required"`
	ClubID     int64     `json:"club_id" validate:"required"`
	ClubName   string    `json:"club_name"`
	Category   string    `json:"category,omitempty"`
	Status     string    `json:"status" validate:"required"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until" validate:"required"`
	QRPayload  string    `json:"qr_payload" validate:"required"`
	PhotoURL   string    `json:"photo_url,omitempty"`
}

// IsValid reports whether the card admits its holder at now. Both bounds are
// inclusive.
func (c Card) IsValid(now time.Time) bool {
	if c.Status != StatusActive {
		return false
	}
	if !c.ValidFrom.IsZero() && now.Before(c.ValidFrom) {
		return false
	}
	return !now.After(c.ValidUntil)
}
