package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vibecodes/vibecodes-api/internal/ideas/domain"
	"github.com/vibecodes/vibecodes-api/internal/notifications"
	"github.com/vibecodes/vibecodes-api/internal/validation"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Repository interface {
	Create(ctx context.Context, i *domain.Idea) error
	GetByID(ctx context.Context, id string) (*domain.Idea, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Idea, error)
	Update(ctx context.Context, i *domain.Idea) error
	Delete(ctx context.Context, id string) (bool, error)
	ToggleVote(ctx context.Context, ideaID, userID string) (*domain.VoteResult, error)
	HasVoted(ctx context.Context, userID string, ideaIDs []string) (map[string]bool, error)
}

type Notifier interface {
	Notify(ctx context.Context, n notifications.NewNotification) error
}

// IdeaService handles idea business logic
type IdeaService struct {
	repo     Repository
	notifier Notifier
}

func NewIdeaService(repo Repository, notifier Notifier) *IdeaService {
	return &IdeaService{repo: repo, notifier: notifier}
}

func (s *IdeaService) CreateIdea(ctx context.Context, req *domain.CreateIdeaRequest) (*domain.Idea, error) {
	title, err := validation.Title(req.Title)
	if err != nil {
		return nil, err
	}
	description, err := validation.Description(req.Description)
	if err != nil {
		return nil, err
	}
	tags, err := validation.TagList(req.Tags)
	if err != nil {
		return nil, err
	}
	github, err := validation.GithubURL(req.GithubURL)
	if err != nil {
		return nil, err
	}
	visibility, err := visibilityOrDefault(req.Visibility)
	if err != nil {
		return nil, err
	}

	idea := &domain.Idea{
		AuthorID:    req.AuthorID,
		Title:       title,
		Description: description,
		Tags:        tags,
		GithubURL:   github,
		Status:      domain.StatusOpen,
		Visibility:  visibility,
	}
	if err := s.repo.Create(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

// GetIdea hides private ideas from everyone but their author.
func (s *IdeaService) GetIdea(ctx context.Context, viewerID, ideaID string) (*domain.Idea, error) {
	id, err := validation.UUID(ideaID, "Idea ID")
	if err != nil {
		return nil, err
	}
	idea, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !idea.VisibleTo(viewerID) {
		return nil, domain.ErrIdeaNotFound
	}
	return idea, nil
}

func (s *IdeaService) ListIdeas(ctx context.Context, f domain.ListFilter) ([]domain.Idea, error) {
	switch f.Sort {
	case "":
		f.Sort = domain.SortNewest
	case domain.SortNewest, domain.SortPopular:
	default:
		return nil, domain.ErrInvalidSort
	}
	if f.Limit <= 0 || f.Limit > maxPageSize {
		f.Limit = defaultPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.AuthorID != "" {
		id, err := validation.UUID(f.AuthorID, "Author ID")
		if err != nil {
			return nil, err
		}
		f.AuthorID = id
	}
	return s.repo.List(ctx, f)
}

func (s *IdeaService) UpdateIdea(ctx context.Context, userID, ideaID string, req *domain.UpdateIdeaRequest) (*domain.Idea, error) {
	idea, err := s.ownedIdea(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if idea.Title, err = validation.Title(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if idea.Description, err = validation.Description(*req.Description); err != nil {
			return nil, err
		}
	}
	if req.Tags != nil {
		if idea.Tags, err = validation.TagList(req.Tags); err != nil {
			return nil, err
		}
	}
	if req.GithubURL != nil {
		if idea.GithubURL, err = validation.GithubURL(req.GithubURL); err != nil {
			return nil, err
		}
	}
	if req.Visibility != nil {
		if idea.Visibility, err = visibilityOrDefault(*req.Visibility); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

func (s *IdeaService) UpdateStatus(ctx context.Context, userID, ideaID, status string) (*domain.Idea, error) {
	if !domain.IsValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	idea, err := s.ownedIdea(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}
	idea.Status = status
	if err := s.repo.Update(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

func (s *IdeaService) DeleteIdea(ctx context.Context, userID, ideaID string) error {
	idea, err := s.ownedIdea(ctx, userID, ideaID)
	if err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, idea.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrIdeaNotFound
	}
	return nil
}

// ToggleVote adds or removes the caller's upvote. New votes notify the author.
func (s *IdeaService) ToggleVote(ctx context.Context, userID, ideaID string) (*domain.VoteResult, error) {
	idea, err := s.GetIdea(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}

	res, err := s.repo.ToggleVote(ctx, idea.ID, userID)
	if err != nil {
		return nil, err
	}

	if res.Voted && s.notifier != nil {
		err := s.notifier.Notify(ctx, notifications.NewNotification{
			UserID:  idea.AuthorID,
			ActorID: userID,
			Type:    notifications.TypeVote,
			IdeaID:  &idea.ID,
		})
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("idea_id", idea.ID).Msg("vote notification failed")
		}
	}
	return res, nil
}

func (s *IdeaService) VotedIdeas(ctx context.Context, userID string, ideas []domain.Idea) (map[string]bool, error) {
	ids := make([]string, 0, len(ideas))
	for _, i := range ideas {
		ids = append(ids, i.ID)
	}
	return s.repo.HasVoted(ctx, userID, ids)
}

func (s *IdeaService) ownedIdea(ctx context.Context, userID, ideaID string) (*domain.Idea, error) {
	id, err := validation.UUID(ideaID, "Idea ID")
	if err != nil {
		return nil, err
	}
	idea, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if idea.AuthorID != userID {
		if !idea.VisibleTo(userID) {
			return nil, domain.ErrIdeaNotFound
		}
		return nil, domain.ErrForbidden
	}
	return idea, nil
}

func visibilityOrDefault(v string) (string, error) {
	switch v {
	case "":
		return domain.VisibilityPublic, nil
	case domain.VisibilityPublic, domain.VisibilityPrivate:
		return v, nil
	}
	return "", &validation.ValidationError{Message: "Visibility must be public or private"}
}
