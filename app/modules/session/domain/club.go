package sessiondomain

// ClubTheme is the optional color scheme of a club.
type ClubTheme struct {
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}

// Club is the organizational tenant the UI is scoped to.
type Club struct {
	ID    int64      `json:"id" validate:"required"`
	Name  string     `json:"name" validate:"required"`
	Slug  string     `json:"slug" validate:"required"`
	Theme *ClubTheme `json:"theme,omitempty"`
}

// Clone returns a deep copy.
func (c *Club) Clone() *Club {
	if c == nil {
		return nil
	}
	out := *c
	out.Theme = clonePtr(c.Theme)
	return &out
}

// State is a point-in-time view of the session.
type State struct {
	User          *User
	Club          *Club
	Authenticated bool
	Loading       bool
}
