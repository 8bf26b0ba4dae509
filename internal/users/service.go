package users

import (
	"context"

	"github.com/vibecodes/vibecodes-api/internal/validation"
)

type Store interface {
	EnsureUser(ctx context.Context, u UpsertUser) (string, error)
	Get(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, p *Profile) (*Profile, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	return s.store.EnsureUser(ctx, u)
}

// GetProfile is the public view: the email is withheld.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	id, err := validation.UUID(userID, "User ID")
	if err != nil {
		return nil, err
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Email = nil
	return p, nil
}

func (s *Service) GetMe(ctx context.Context, userID string) (*Profile, error) {
	return s.store.Get(ctx, userID)
}

// UpdateProfile applies the non-nil fields. Empty values clear the field.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*Profile, error) {
	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		if p.DisplayName, err = validation.DisplayName(in.DisplayName); err != nil {
			return nil, err
		}
	}
	if in.Bio != nil {
		if p.Bio, err = validation.Bio(in.Bio); err != nil {
			return nil, err
		}
	}
	if in.GithubURL != nil {
		if p.GithubURL, err = validation.GithubURL(in.GithubURL); err != nil {
			return nil, err
		}
	}
	if in.AvatarURL != nil {
		if p.AvatarURL, err = validation.AvatarURL(in.AvatarURL); err != nil {
			return nil, err
		}
	}
	return s.store.Update(ctx, p)
}
