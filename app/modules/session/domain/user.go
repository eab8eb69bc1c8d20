package sessiondomain

// User mirrors the authenticated account as returned by sign-in.
type User struct {
	ID        int64   `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required"`
	IsAdmin   bool    `json:"is_admin"`
	ClubID    *int64  `json:"club_id,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	CPF       *string `json:"cpf,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.ClubID = clonePtr(u.ClubID)
	c.Phone = clonePtr(u.Phone)
	c.CPF = clonePtr(u.CPF)
	c.BirthDate = clonePtr(u.BirthDate)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
