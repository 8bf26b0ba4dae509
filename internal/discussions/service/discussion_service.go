package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/vibecodes/vibecodes-api/internal/discussions/domain"
	"github.com/vibecodes/vibecodes-api/internal/notifications"
	"github.com/vibecodes/vibecodes-api/internal/validation"
)

// Repository is the storage the service needs; *repository.DiscussionRepository satisfies it.
type Repository interface {
	Create(ctx context.Context, d *domain.Discussion) error
	ListByIdea(ctx context.Context, ideaID string) ([]domain.Discussion, error)
	GetByID(ctx context.Context, id string) (*domain.Discussion, error)
	Update(ctx context.Context, d *domain.Discussion) error
	SetPinned(ctx context.Context, id string, pinned bool) error
	Delete(ctx context.Context, id string) (bool, error)
	Idea(ctx context.Context, ideaID string) (*domain.IdeaRef, error)
	CreateReply(ctx context.Context, reply *domain.Reply) error
	GetReply(ctx context.Context, id string) (*domain.Reply, error)
	ListReplies(ctx context.Context, discussionID string) ([]domain.Reply, error)
	DeleteReply(ctx context.Context, id, discussionID string) error
}

type Notifier interface {
	Notify(ctx context.Context, n notifications.NewNotification) error
}

// DiscussionService validates discussion input and shapes threads for display.
type DiscussionService struct {
	repo     Repository
	notifier Notifier
}

func NewDiscussionService(repo Repository, notifier Notifier) *DiscussionService {
	return &DiscussionService{repo: repo, notifier: notifier}
}

func (s *DiscussionService) CreateDiscussion(ctx context.Context, req *domain.CreateDiscussionRequest) (*domain.Discussion, error) {
	ideaID, err := validation.UUID(req.IdeaID, "Idea ID")
	if err != nil {
		return nil, err
	}
	title, err := validation.DiscussionTitle(req.Title)
	if err != nil {
		return nil, err
	}
	body, err := validation.DiscussionBody(req.Body)
	if err != nil {
		return nil, err
	}
	if _, err := s.visibleIdea(ctx, req.AuthorID, ideaID); err != nil {
		return nil, err
	}

	d := &domain.Discussion{
		IdeaID:   ideaID,
		AuthorID: req.AuthorID,
		Title:    title,
		Body:     body,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiscussionService) ListDiscussions(ctx context.Context, viewerID, ideaID string) ([]domain.Discussion, error) {
	id, err := validation.UUID(ideaID, "Idea ID")
	if err != nil {
		return nil, err
	}
	if _, err := s.visibleIdea(ctx, viewerID, id); err != nil {
		return nil, err
	}
	return s.repo.ListByIdea(ctx, id)
}

// GetThread loads a discussion with its replies arranged as a two-level tree.
func (s *DiscussionService) GetThread(ctx context.Context, viewerID, discussionID string) (*domain.Thread, error) {
	id, err := validation.UUID(discussionID, "Discussion ID")
	if err != nil {
		return nil, err
	}

	d, _, err := s.visibleDiscussion(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}
	replies, err := s.repo.ListReplies(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.Thread{
		Discussion: *d,
		Replies:    domain.BuildReplyTree(replies),
	}, nil
}

func (s *DiscussionService) UpdateDiscussion(ctx context.Context, userID, discussionID string, req *domain.UpdateDiscussionRequest) (*domain.Discussion, error) {
	d, err := s.ownedDiscussion(ctx, userID, discussionID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := validation.DiscussionTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		d.Title = title
	}
	if req.Body != nil {
		body, err := validation.DiscussionBody(*req.Body)
		if err != nil {
			return nil, err
		}
		d.Body = body
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiscussionService) DeleteDiscussion(ctx context.Context, userID, discussionID string) error {
	d, err := s.ownedDiscussion(ctx, userID, discussionID)
	if err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, d.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDiscussionNotFound
	}
	return nil
}

// TogglePin flips the pinned flag. Only the idea's owner may pin.
func (s *DiscussionService) TogglePin(ctx context.Context, userID, discussionID string) (*domain.Discussion, error) {
	id, err := validation.UUID(discussionID, "Discussion ID")
	if err != nil {
		return nil, err
	}
	d, idea, err := s.visibleDiscussion(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if idea.AuthorID != userID {
		return nil, domain.ErrForbidden
	}

	d.Pinned = !d.Pinned
	if err := s.repo.SetPinned(ctx, d.ID, d.Pinned); err != nil {
		return nil, err
	}
	return d, nil
}

// AddReply stores a reply. A parent, when given, must be in the same thread;
// nesting depth is not checked here, display keeps two levels.
func (s *DiscussionService) AddReply(ctx context.Context, req *domain.CreateReplyRequest) (*domain.Reply, error) {
	discussionID, err := validation.UUID(req.DiscussionID, "Discussion ID")
	if err != nil {
		return nil, err
	}
	content, err := validation.DiscussionReply(req.Content)
	if err != nil {
		return nil, err
	}
	parentID, err := validation.OptionalUUID(req.ParentReplyID, "Parent reply ID")
	if err != nil {
		return nil, err
	}

	d, _, err := s.visibleDiscussion(ctx, req.AuthorID, discussionID)
	if err != nil {
		return nil, err
	}

	var parent *domain.Reply
	if parentID != nil {
		parent, err = s.repo.GetReply(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.DiscussionID != d.ID {
			return nil, domain.ErrParentNotInThread
		}
	}

	reply := &domain.Reply{
		DiscussionID:  d.ID,
		AuthorID:      req.AuthorID,
		Content:       content,
		ParentReplyID: parentID,
	}
	if err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	s.notifyReply(ctx, d, parent, reply)
	return reply, nil
}

func (s *DiscussionService) DeleteReply(ctx context.Context, userID, replyID string) error {
	id, err := validation.UUID(replyID, "Reply ID")
	if err != nil {
		return err
	}
	reply, err := s.repo.GetReply(ctx, id)
	if err != nil {
		return err
	}
	if reply.AuthorID != userID {
		return domain.ErrForbidden
	}
	return s.repo.DeleteReply(ctx, reply.ID, reply.DiscussionID)
}

func (s *DiscussionService) ownedDiscussion(ctx context.Context, userID, discussionID string) (*domain.Discussion, error) {
	id, err := validation.UUID(discussionID, "Discussion ID")
	if err != nil {
		return nil, err
	}
	d, _, err := s.visibleDiscussion(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if d.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

// visibleIdea loads the idea and hides it from non-authors when private.
func (s *DiscussionService) visibleIdea(ctx context.Context, viewerID, ideaID string) (*domain.IdeaRef, error) {
	idea, err := s.repo.Idea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if !idea.VisibleTo(viewerID) {
		return nil, domain.ErrIdeaNotFound
	}
	return idea, nil
}

// visibleDiscussion loads a discussion whose idea the viewer may see. A thread
// under a hidden idea reads as missing.
func (s *DiscussionService) visibleDiscussion(ctx context.Context, viewerID, id string) (*domain.Discussion, *domain.IdeaRef, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	idea, err := s.repo.Idea(ctx, d.IdeaID)
	if errors.Is(err, domain.ErrIdeaNotFound) {
		return nil, nil, domain.ErrDiscussionNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !idea.VisibleTo(viewerID) {
		return nil, nil, domain.ErrDiscussionNotFound
	}
	return d, idea, nil
}

func (s *DiscussionService) notifyReply(ctx context.Context, d *domain.Discussion, parent *domain.Reply, reply *domain.Reply) {
	if s.notifier == nil {
		return
	}

	recipients := []string{d.AuthorID}
	if parent != nil && parent.AuthorID != d.AuthorID {
		recipients = append(recipients, parent.AuthorID)
	}
	for _, userID := range recipients {
		// The reply is already committed; a lost notification is only logged.
		err := s.notifier.Notify(ctx, notifications.NewNotification{
			UserID:       userID,
			ActorID:      reply.AuthorID,
			Type:         notifications.TypeReply,
			IdeaID:       &d.IdeaID,
			DiscussionID: &d.ID,
		})
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("discussion_id", d.ID).Str("user_id", userID).Msg("reply notification failed")
		}
	}
}
