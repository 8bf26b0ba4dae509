package agents

import (
	"context"

	"github.com/vibecodes/vibecodes-api/internal/validation"
)

type Store interface {
	Create(ctx context.Context, b *Bot) (*Bot, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Bot, error)
	Get(ctx context.Context, id string) (*Bot, error)
	Update(ctx context.Context, b *Bot) (*Bot, error)
	SetActive(ctx context.Context, id string, active bool) (*Bot, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreateBot(ctx context.Context, ownerID string, in BotInput) (*Bot, error) {
	var name string
	if in.Name != nil {
		name = *in.Name
	}
	b := &Bot{OwnerID: ownerID}
	var err error
	if b.Name, err = validation.BotName(name); err != nil {
		return nil, err
	}
	if err := applyOptional(b, in); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, b)
}

func (s *Service) ListMyBots(ctx context.Context, ownerID string) ([]Bot, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// GetBot is readable by anyone so bots can be shown on the boards they work on.
func (s *Service) GetBot(ctx context.Context, botID string) (*Bot, error) {
	id, err := validation.UUID(botID, "Bot ID")
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

// UpdateBot applies the non-nil fields. Empty optional fields are cleared.
func (s *Service) UpdateBot(ctx context.Context, ownerID, botID string, in BotInput) (*Bot, error) {
	b, err := s.owned(ctx, ownerID, botID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if b.Name, err = validation.BotName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Role != nil {
		if b.Role, err = validation.BotRole(in.Role); err != nil {
			return nil, err
		}
	}
	if in.SystemPrompt != nil {
		if b.SystemPrompt, err = validation.SystemPrompt(in.SystemPrompt); err != nil {
			return nil, err
		}
	}
	if in.Bio != nil {
		if b.Bio, err = validation.Bio(in.Bio); err != nil {
			return nil, err
		}
	}
	if in.AvatarURL != nil {
		if b.AvatarURL, err = validation.AvatarURL(in.AvatarURL); err != nil {
			return nil, err
		}
	}
	return s.store.Update(ctx, b)
}

func (s *Service) SetActive(ctx context.Context, ownerID, botID string, active bool) (*Bot, error) {
	b, err := s.owned(ctx, ownerID, botID)
	if err != nil {
		return nil, err
	}
	return s.store.SetActive(ctx, b.ID, active)
}

func (s *Service) DeleteBot(ctx context.Context, ownerID, botID string) error {
	b, err := s.owned(ctx, ownerID, botID)
	if err != nil {
		return err
	}
	ok, err := s.store.Delete(ctx, b.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) owned(ctx context.Context, ownerID, botID string) (*Bot, error) {
	b, err := s.GetBot(ctx, botID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return b, nil
}

func applyOptional(b *Bot, in BotInput) error {
	var err error
	if b.Role, err = validation.BotRole(in.Role); err != nil {
		return err
	}
	if b.SystemPrompt, err = validation.SystemPrompt(in.SystemPrompt); err != nil {
		return err
	}
	if b.Bio, err = validation.Bio(in.Bio); err != nil {
		return err
	}
	if b.AvatarURL, err = validation.AvatarURL(in.AvatarURL); err != nil {
		return err
	}
	return nil
}
