package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const TokenLen = 64

type AuthService struct {
	employees  EmployeeRepo
	sessions   SessionRepo
	ttl        time.Duration
	bcryptCost int
	genToken   func(n int) string
	now        func() time.Time
}

func NewAuthService(employees EmployeeRepo, sessions SessionRepo, ttl time.Duration, bcryptCost int, genToken func(n int) string) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		employees:  employees,
		sessions:   sessions,
		ttl:        ttl,
		bcryptCost: bcryptCost,
		genToken:   genToken,
		now:        time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, employee *Employee, passwd string) error {
	if !validatePasswd(passwd, []string{employee.Code, employee.Name}) {
		return ErrWeakPasswd
	}
	if _, ok := ParseRole(string(employee.Role)); !ok {
		return fmt.Errorf("unknown role %q", employee.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passwd), s.bcryptCost)
	if err != nil {
		return err
	}
	now := s.now()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	return s.employees.Create(ctx, employee, hash)
}

// Login checks the credentials and opens a new session, returning its token.
func (s *AuthService) Login(ctx context.Context, code string, passwd string) (string, error) {
	hash, err := s.employees.ReadPasswdHash(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return "", ErrBadCredentials
	} else if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(passwd)) != nil {
		return "", ErrBadCredentials
	}

	token := s.genToken(TokenLen)
	err = s.sessions.Create(ctx, token, code, s.now().Add(s.ttl))
	if err != nil {
		return "", err
	}
	return token, nil
}

// Principal resolves the identity bound to token.
func (s *AuthService) Principal(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	employee, err := s.sessions.FindEmployee(ctx, token, s.now())
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNoSession
	} else if err != nil {
		return nil, err
	}
	if employee.DeleteFlg {
		return nil, ErrNoSession
	}
	p := PrincipalOf(*employee)
	return &p, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func validatePasswd(passwd string, userInputs []string) bool {
	if len(passwd) < 8 || len(passwd) > 64 {
		return false
	}
	for _, in := range userInputs {
		if in != "" && passwd == in {
			return false
		}
	}

	containsLetter := false
	containsNumber := false
	for _, r := range passwd {
		if !unicode.IsPrint(r) {
			return false
		}
		if unicode.IsLetter(r) {
			containsLetter = true
		} else if unicode.IsNumber(r) {
			containsNumber = true
		}
	}
	return containsLetter && containsNumber
}
