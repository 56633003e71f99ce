package auth

import (
	"testing"

	appErrors "github.com/fatali-fataliyev/finance_ledger/customErrors"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	plain := "messi10"

	hash, err := DefaultHasher.Hash(plain)
	require.NoError(t, err)
	require.NotEqual(t, plain, hash)
	require.Len(t, hash, 60)

	require.True(t, DefaultHasher.Compare(hash, plain))
	require.False(t, DefaultHasher.Compare(hash, "messi11"))
	require.False(t, DefaultHasher.Compare("not-a-hash", plain))
}

func TestValidateUserFields(t *testing.T) {
	long := make([]byte, MAX_PASSWORD_LENGTH+1)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name    string
		user    NewUser
		wantErr bool
	}{
		{name: "valid", user: NewUser{UserName: "john_doe", PasswordPlain: "secret"}},
		{name: "empty username", user: NewUser{UserName: "", PasswordPlain: "secret"}, wantErr: true},
		{name: "uppercase username", user: NewUser{UserName: "John", PasswordPlain: "secret"}, wantErr: true},
		{name: "username with space", user: NewUser{UserName: "john doe", PasswordPlain: "secret"}, wantErr: true},
		{name: "username too long", user: NewUser{UserName: "abcdefghijklmnopqrstuvwxyz_12345", PasswordPlain: "secret"}, wantErr: true},
		{name: "empty password", user: NewUser{UserName: "john", PasswordPlain: ""}, wantErr: true},
		{name: "password too long", user: NewUser{UserName: "john", PasswordPlain: string(long)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.ValidateUserFields()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.True(t, appErrors.Is(err, appErrors.ErrInvalidInput))
		})
	}
}

func TestHasherMinCost(t *testing.T) {
	h := Hasher{Cost: 4}
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	require.True(t, h.Compare(hash, "pw"))
	require.True(t, DefaultHasher.Compare(hash, "pw"))
}
