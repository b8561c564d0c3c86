package mock

import (
	"context"
	"net/mail"
	"strings"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
)

func (s *Source) GetProfile(ctx context.Context) (model.Profile, error) {
	const op = "profile.get"
	if err := s.wait(ctx, op); err != nil {
		return model.Profile{}, err
	}
	rec, err := s.profiles.Get(ctx, profileKey)
	return rec.Profile, fault.Wrap(op, err)
}

// UpdateProfile merges patch into the stored profile. A non-empty email must
// be a bare address.
func (s *Source) UpdateProfile(ctx context.Context, patch model.ProfilePatch) (model.Profile, error) {
	const op = "profile.update"
	if err := s.wait(ctx, op); err != nil {
		return model.Profile{}, err
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email != "" && !validEmail(email) {
			return model.Profile{}, fault.Validation(op, "email is not a valid address")
		}
		patch.Email = &email
	}
	rec, err := s.profiles.Update(ctx, profileKey, func(r *profileRecord) error {
		r.Profile = patch.Apply(r.Profile)
		return nil
	})
	return rec.Profile, fault.Wrap(op, err)
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
