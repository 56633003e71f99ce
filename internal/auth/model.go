package auth

import (
	"regexp"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
)

const (
	MAX_LENGTH_USERNAME = 30
	MAX_PASSWORD_LENGTH = 72 // bcrypt ignores anything past 72 bytes
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9_]{1,30}$`)

type User struct {
	UserName       string
	PasswordHashed string
}

type NewUser struct {
	UserName      string
	PasswordPlain string
}

func (newUser NewUser) ValidateUserFields() error {
	if newUser.UserName == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "Username cannot be empty!")
	}
	if len(newUser.UserName) > MAX_LENGTH_USERNAME {
		return appErrors.New(appErrors.ErrInvalidInput, "Username so long, maximum length is %d", MAX_LENGTH_USERNAME)
	}
	if !usernameRegex.MatchString(newUser.UserName) {
		return appErrors.New(appErrors.ErrInvalidInput, "Username contains wrong characters, example username: john_doe")
	}
	if newUser.PasswordPlain == "" {
		return appErrors.New(appErrors.ErrInvalidInput, "Password cannot be empty!")
	}
	if len(newUser.PasswordPlain) > MAX_PASSWORD_LENGTH {
		return appErrors.New(appErrors.ErrInvalidInput, "Password so long, maximum length is %d", MAX_PASSWORD_LENGTH)
	}
	return nil
}

type UserCredentials struct {
	UserName       string
	PasswordHashed string
}

type UserCredentialsPure struct {
	UserName      string
	PasswordPlain string
}
