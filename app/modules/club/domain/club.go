package clubdomain

import sessiondomain "github.com/Black-And-White-Club/esportivo/app/modules/session/domain"

// Profile is the full club page. The embedded Club is what gets selected.
type Profile struct {
	sessiondomain.Club
	Description string   `json:"description,omitempty"`
	City        string   `json:"city,omitempty"`
	State       string   `json:"state,omitempty"`
	LogoURL     string   `json:"logo_url,omitempty"`
	Sports      []string `json:"sports,omitempty"`
	MemberCount int      `json:"member_count"`
}
