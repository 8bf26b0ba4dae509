package comments

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vibecodes/vibecodes-api/internal/notifications"
	"github.com/vibecodes/vibecodes-api/internal/validation"
)

type Store interface {
	Idea(ctx context.Context, ideaID string) (*IdeaRef, error)
	Create(ctx context.Context, cm *Comment) error
	Get(ctx context.Context, id string) (*Comment, error)
	List(ctx context.Context, ideaID string) ([]Comment, error)
	Delete(ctx context.Context, id, ideaID string) error
}

type Notifier interface {
	Notify(ctx context.Context, n notifications.NewNotification) error
}

type Service struct {
	store    Store
	notifier Notifier
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

type CreateRequest struct {
	IdeaID          string
	AuthorID        string
	Content         string
	ParentCommentID *string
	Type            string
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Comment, error) {
	ideaID, err := validation.UUID(req.IdeaID, "Idea ID")
	if err != nil {
		return nil, err
	}
	content, err := validation.Comment(req.Content)
	if err != nil {
		return nil, err
	}
	parentID, err := validation.OptionalUUID(req.ParentCommentID, "Parent comment ID")
	if err != nil {
		return nil, err
	}
	kind := req.Type
	if kind == "" {
		kind = TypeComment
	}
	if !isValidType(kind) {
		return nil, ErrInvalidType
	}

	idea, err := s.store.Idea(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if !idea.VisibleTo(req.AuthorID) {
		return nil, ErrIdeaNotFound
	}

	if parentID != nil {
		parent, err := s.store.Get(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.IdeaID != ideaID {
			return nil, ErrParentMismatch
		}
	}

	cm := &Comment{
		IdeaID:          ideaID,
		AuthorID:        req.AuthorID,
		ParentCommentID: parentID,
		Content:         content,
		Type:            kind,
	}
	if err := s.store.Create(ctx, cm); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		err := s.notifier.Notify(ctx, notifications.NewNotification{
			UserID:  idea.AuthorID,
			ActorID: req.AuthorID,
			Type:    notifications.TypeComment,
			IdeaID:  &cm.IdeaID,
		})
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("comment_id", cm.ID).Msg("comment notification failed")
		}
	}
	return cm, nil
}

// List returns the idea's comments oldest first. Clients nest by parent_comment_id.
func (s *Service) List(ctx context.Context, viewerID, ideaID string) ([]Comment, error) {
	id, err := validation.UUID(ideaID, "Idea ID")
	if err != nil {
		return nil, err
	}
	idea, err := s.store.Idea(ctx, id)
	if err != nil {
		return nil, err
	}
	if !idea.VisibleTo(viewerID) {
		return nil, ErrIdeaNotFound
	}
	return s.store.List(ctx, id)
}

func (s *Service) Delete(ctx context.Context, userID, commentID string) error {
	id, err := validation.UUID(commentID, "Comment ID")
	if err != nil {
		return err
	}
	cm, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if cm.AuthorID != userID {
		return ErrForbidden
	}
	return s.store.Delete(ctx, cm.ID, cm.IdeaID)
}
