package authsvc

import (
	"context"
	"errors"

	"bikerental/model"
	"bikerental/util/hash"
	jwtutil "bikerental/util/jwt"
)

type ErrCode string

const (
	ErrInvalidCreds  ErrCode = "INVALID_CREDENTIALS"
	ErrNotConfigured ErrCode = "NOT_CONFIGURED"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const tokenTTLHours = 12

type Service interface {
	// Login checks the back-office operator and returns a signed token.
	Login(ctx context.Context, req model.LoginReq) (string, error)
}

type service struct {
	username     string
	passwordHash string
	secret       string
}

func New(username, passwordHash, secret string) Service {
	return &service{username: username, passwordHash: passwordHash, secret: secret}
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (string, error) {
	if s.passwordHash == "" {
		return "", makeErr(ErrNotConfigured, "operator password is not configured")
	}
	if req.Username != s.username || !hash.Check(s.passwordHash, req.Password) {
		return "", makeErr(ErrInvalidCreds, "invalid credentials")
	}
	return jwtutil.Issue(s.secret, s.username, "operator", tokenTTLHours)
}
