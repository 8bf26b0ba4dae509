package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/vibecodes/vibecodes-api/internal/ideas/domain"
	"github.com/vibecodes/vibecodes-api/internal/validation"
)

const MaxPromptLength = 2000

var (
	ErrDisabled    = errors.New("AI enhancement is not configured")
	ErrRateLimited = errors.New("too many enhancement requests, try again in a minute")
	ErrUpstream    = errors.New("AI enhancement failed")
)

type IdeaGetter interface {
	GetIdea(ctx context.Context, viewerID, ideaID string) (*domain.Idea, error)
}

type Enhancer interface {
	Enhance(ctx context.Context, req Request) (*Response, error)
}

// Service suggests an improved description. It never writes the idea; the
// caller applies the suggestion through the normal idea update.
type Service struct {
	ideas   IdeaGetter
	client  Enhancer
	limiter *Limiter
}

// NewService returns a disabled service when client is nil.
func NewService(ideas IdeaGetter, client Enhancer, limiter *Limiter) *Service {
	return &Service{ideas: ideas, client: client, limiter: limiter}
}

func (s *Service) Enhance(ctx context.Context, userID, ideaID, prompt string) (string, error) {
	if s.client == nil {
		return "", ErrDisabled
	}
	prompt = strings.TrimSpace(prompt)
	if utf8.RuneCountInString(prompt) > MaxPromptLength {
		return "", &validation.ValidationError{Message: fmt.Sprintf("Prompt must be %d characters or less", MaxPromptLength)}
	}

	idea, err := s.ideas.GetIdea(ctx, userID, ideaID)
	if err != nil {
		return "", err
	}
	if idea.AuthorID != userID {
		return "", domain.ErrForbidden
	}
	if !s.limiter.Allow(userID) {
		return "", ErrRateLimited
	}

	resp, err := s.client.Enhance(ctx, Request{Title: idea.Title, Description: idea.Description, Prompt: prompt})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("idea_id", idea.ID).Msg("enhance failed")
		return "", ErrUpstream
	}

	out, err := validation.Description(resp.Description)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("idea_id", idea.ID).Msg("enhanced description rejected")
		return "", ErrUpstream
	}
	return out, nil
}
