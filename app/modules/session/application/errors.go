package sessionservice

import "errors"

const (
	// LoginFailedTitle is the alert title for sign-in failures.
	LoginFailedTitle = "Erro no login"

	// LoginFailedMessage is shown when the server gives no message.
	LoginFailedMessage = "Não foi possível entrar. Verifique seus dados e tente novamente."

	// MissingCredentialsMessage is shown when identifier or password is blank.
	MissingCredentialsMessage = "Informe seu e-mail e sua senha."
)

var (
	// ErrMissingCredentials is returned when identifier or password is empty.
	ErrMissingCredentials = errors.New("identifier and password are required")

	// ErrInvalidLoginResponse is returned when the server accepts the login but
	// the response carries no token or no valid user.
	ErrInvalidLoginResponse = errors.New("login response missing token or user")

	// ErrInvalidClub is returned when selecting a club without an id.
	ErrInvalidClub = errors.New("club must have an id")
)
