package mock

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
)

// Login accepts any well-formed email. The password is not checked.
func (s *Source) Login(ctx context.Context, email, _ string) (model.Session, error) {
	const op = "auth.login"
	if err := s.wait(ctx, op); err != nil {
		return model.Session{}, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.Session{}, fault.Validation(op, "email is required")
	}
	if !validEmail(email) {
		return model.Session{}, fault.Validation(op, "email is not a valid address")
	}

	user := model.User{
		ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String(),
		Email:    email,
		FullName: s.displayName(ctx, email),
	}
	sess, err := s.issuer.Issue(user)
	return sess, fault.Wrap(op, err)
}

func (s *Source) CurrentUser(ctx context.Context, token string) (model.User, error) {
	const op = "auth.current_user"
	if err := s.wait(ctx, op); err != nil {
		return model.User{}, err
	}
	u, err := s.issuer.Parse(token)
	return u, fault.Wrap(op, err)
}

// displayName prefers the profile name when the email matches it.
func (s *Source) displayName(ctx context.Context, email string) string {
	if rec, err := s.profiles.Get(ctx, profileKey); err == nil && strings.EqualFold(rec.Email, email) && rec.FullName != "" {
		return rec.FullName
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}
