package sessiondomain

// Session event topics.
const (
	SessionRestoredV1     = "session.restored.v1"
	SessionSignedInV1     = "session.signed_in.v1"
	SessionSignedOutV1    = "session.signed_out.v1"
	SessionClubSelectedV1 = "session.club_selected.v1"
	SessionClubClearedV1  = "session.club_cleared.v1"
)

// SessionRestoredPayloadV1 is published once initialization completes.
type SessionRestoredPayloadV1 struct {
	UserID        *int64 `json:"user_id,omitempty"`
	ClubID        *int64 `json:"club_id,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// SessionSignedInPayloadV1 is published after a successful sign-in.
type SessionSignedInPayloadV1 struct {
	UserID  int64 `json:"user_id"`
	IsAdmin bool  `json:"is_admin"`
}

// SessionSignedOutPayloadV1 is published after sign-out. ClubID reports the
// club that stays selected, if any.
type SessionSignedOutPayloadV1 struct {
	UserID *int64 `json:"user_id,omitempty"`
	ClubID *int64 `json:"club_id,omitempty"`
}

// SessionClubSelectedPayloadV1 is published when a club is selected.
type SessionClubSelectedPayloadV1 struct {
	ClubID int64  `json:"club_id"`
	Slug   string `json:"slug"`
}

// SessionClubClearedPayloadV1 is published when the club scope is cleared.
type SessionClubClearedPayloadV1 struct {
	PreviousClubID *int64 `json:"previous_club_id,omitempty"`
}
