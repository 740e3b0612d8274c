package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		hash    string
		roles   []Role
		wantErr bool
	}{
		{name: "valid regular user", email: "alice@example.com", hash: "$2a$14$hash", roles: []Role{RoleRegular}},
		{name: "valid admin", email: "root@example.com", hash: "$2a$14$hash", roles: []Role{RoleRegular, RoleAdmin}},
		{name: "malformed email", email: "not-an-email", hash: "$2a$14$hash", roles: []Role{RoleRegular}, wantErr: true},
		{name: "email too long", email: strings.Repeat("a", 45) + "@example.com", hash: "$2a$14$hash", roles: []Role{RoleRegular}, wantErr: true},
		{name: "empty credential", email: "alice@example.com", hash: "", roles: []Role{RoleRegular}, wantErr: true},
		{name: "no roles", email: "alice@example.com", hash: "$2a$14$hash", wantErr: true},
		{name: "unknown role", email: "alice@example.com", hash: "$2a$14$hash", roles: []Role{"superuser"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUser(tt.email, tt.hash, tt.roles...)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, u.Email)
			assert.Equal(t, tt.roles, u.Roles)
		})
	}
}

func TestUser_HasRole(t *testing.T) {
	u := &User{Email: "a@b.cc", Roles: []Role{RoleRegular}}

	assert.True(t, u.HasRole(RoleRegular))
	assert.False(t, u.HasRole(RoleAdmin))
}

func TestSecret_Validate(t *testing.T) {
	valid := Secret{Name: "gmail", Username: "alice", Password: "p@ss"}

	tests := []struct {
		name    string
		mutate  func(s *Secret)
		wantErr bool
	}{
		{name: "valid", mutate: func(s *Secret) {}},
		{name: "empty name", mutate: func(s *Secret) { s.Name = "" }, wantErr: true},
		{name: "name too long", mutate: func(s *Secret) { s.Name = strings.Repeat("x", 21) }, wantErr: true},
		{name: "name at limit", mutate: func(s *Secret) { s.Name = strings.Repeat("x", 20) }},
		{name: "empty username", mutate: func(s *Secret) { s.Username = "" }, wantErr: true},
		{name: "username too long", mutate: func(s *Secret) { s.Username = strings.Repeat("x", 51) }, wantErr: true},
		{name: "empty password", mutate: func(s *Secret) { s.Password = "" }, wantErr: true},
		{name: "password too long", mutate: func(s *Secret) { s.Password = strings.Repeat("x", 251) }, wantErr: true},
		{name: "password at limit", mutate: func(s *Secret) { s.Password = strings.Repeat("x", 250) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotification_Validate(t *testing.T) {
	valid := Notification{AdminEmail: "root@example.com", Title: "maintenance", Description: "tonight at 10pm"}

	assert.NoError(t, valid.Validate())

	noTitle := valid
	noTitle.Title = ""
	assert.Error(t, noTitle.Validate())

	noDescription := valid
	noDescription.Description = ""
	assert.Error(t, noDescription.Validate())

	badSender := valid
	badSender.AdminEmail = "root"
	assert.Error(t, badSender.Validate())
}
