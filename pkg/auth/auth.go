package authentication

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"
)

type IBasicAuthService interface {
	Validate(username, password string) bool
	DecodeFromHeader(auth string) (string, string)
}

type BasicAuthTConfig struct {
	Username string

	Password string
}

type basicAuth struct {
	username string
	password string
}

func NewBasicAuthService(config *BasicAuthTConfig) IBasicAuthService {
	if config == nil {
		config = &BasicAuthTConfig{}
	}
	return &basicAuth{
		username: config.Username,
		password: config.Password,
	}
}

// Validate compares in constant time. Empty configured credentials never match.
func (b *basicAuth) Validate(username, password string) bool {
	if b.username == "" || b.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(b.username), []byte(username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(b.password), []byte(password)) == 1
	return userOK && passOK
}

func (b *basicAuth) DecodeFromHeader(auth string) (string, string) {
	encoded, ok := strings.CutPrefix(auth, "Basic ")
	if !ok {
		return "", ""
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ""
	}

	// Passwords may contain ':'; the username may not.
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", ""
	}

	return username, password
}
