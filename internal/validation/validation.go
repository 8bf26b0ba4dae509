// Package validation normalizes and checks user input before it reaches the
// database. Every validator trims surrounding whitespace first; required fields
// reject empty input, optional fields map empty input to nil.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength           = 200
	MaxDescriptionLength     = 50000
	MaxCommentLength         = 5000
	MaxBioLength             = 500
	MaxTags                  = 10
	MaxTagLength             = 50
	MaxLabelNameLength       = 50
	MaxURLLength             = 2000
	MaxDiscussionTitleLength = 200
	MaxDiscussionBodyLength  = 10000
	MaxDiscussionReplyLength = 5000
	MaxBotNameLength         = 100
	MaxBotRoleLength         = 100
	MaxSystemPromptLength    = 10000
	MaxColumnTitleLength     = 50
	MaxTaskTitleLength       = 200
	MaxDisplayNameLength     = 100
)

// LabelColors is the palette board labels may use.
var LabelColors = []string{
	"red", "orange", "amber", "yellow", "lime", "green",
	"emerald", "cyan", "blue", "violet", "purple", "pink",
}

var (
	githubURLPattern = regexp.MustCompile(`^https://(www\.)?github\.com/[^/\s]+`)
	uuidPattern      = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

func required(raw, field string, max int) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", newError(field + " is required")
	}
	if utf8.RuneCountInString(v) > max {
		return "", newError(fmt.Sprintf("%s must be %d characters or less", field, max))
	}
	return v, nil
}

func optional(raw *string, field string, max int) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > max {
		return nil, newError(fmt.Sprintf("%s must be %d characters or less", field, max))
	}
	return &v, nil
}

func Title(raw string) (string, error) {
	return required(raw, "Title", MaxTitleLength)
}

func Description(raw string) (string, error) {
	return required(raw, "Description", MaxDescriptionLength)
}

func OptionalDescription(raw *string) (*string, error) {
	return optional(raw, "Description", MaxDescriptionLength)
}

func Comment(raw string) (string, error) {
	return required(raw, "Comment", MaxCommentLength)
}

func Bio(raw *string) (*string, error) {
	return optional(raw, "Bio", MaxBioLength)
}

// Tags splits a comma-separated list, dropping blank entries. Order is kept.
func Tags(raw string) ([]string, error) {
	tags := make([]string, 0, MaxTags)
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return nil, newError(fmt.Sprintf("Each tag must be %d characters or less", MaxTagLength))
		}
		tags = append(tags, tag)
	}
	if len(tags) > MaxTags {
		return nil, newError(fmt.Sprintf("Maximum %d tags allowed", MaxTags))
	}
	return tags, nil
}

// TagList applies Tags to an already split list.
func TagList(raw []string) ([]string, error) {
	return Tags(strings.Join(raw, ","))
}

func LabelName(raw string) (string, error) {
	return required(raw, "Label name", MaxLabelNameLength)
}

func LabelColor(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	for _, c := range LabelColors {
		if v == c {
			return v, nil
		}
	}
	return "", newError("Invalid label color")
}

func GithubURL(raw *string) (*string, error) {
	v, err := optional(raw, "GitHub URL", MaxURLLength)
	if err != nil || v == nil {
		return v, err
	}
	if !githubURLPattern.MatchString(*v) {
		return nil, newError("Must be a valid GitHub URL (https://github.com/...)")
	}
	return v, nil
}

// AvatarURL accepts any absolute URL regardless of scheme or host.
func AvatarURL(raw *string) (*string, error) {
	v, err := optional(raw, "Avatar URL", MaxURLLength)
	if err != nil || v == nil {
		return v, err
	}
	u, perr := url.Parse(*v)
	if perr != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "" && u.Path == "") {
		return nil, newError("Invalid avatar URL")
	}
	return v, nil
}

// UUID checks the canonical 8-4-4-4-12 form. label names the field in error
// messages and defaults to "ID".
func UUID(raw, label string) (string, error) {
	if label == "" {
		label = "ID"
	}
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", newError(label + " is required")
	}
	if !uuidPattern.MatchString(v) {
		return "", newError(label + " must be a valid UUID")
	}
	return v, nil
}

// OptionalUUID is UUID for nullable references such as a parent id.
func OptionalUUID(raw *string, label string) (*string, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	v, err := UUID(*raw, label)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func DiscussionTitle(raw string) (string, error) {
	return required(raw, "Title", MaxDiscussionTitleLength)
}

func DiscussionBody(raw string) (string, error) {
	return required(raw, "Body", MaxDiscussionBodyLength)
}

func DiscussionReply(raw string) (string, error) {
	return required(raw, "Reply", MaxDiscussionReplyLength)
}

func BotName(raw string) (string, error) {
	return required(raw, "Name", MaxBotNameLength)
}

func BotRole(raw *string) (*string, error) {
	return optional(raw, "Role", MaxBotRoleLength)
}

func SystemPrompt(raw *string) (*string, error) {
	return optional(raw, "System prompt", MaxSystemPromptLength)
}

func ColumnTitle(raw string) (string, error) {
	return required(raw, "Column title", MaxColumnTitleLength)
}

func TaskTitle(raw string) (string, error) {
	return required(raw, "Task title", MaxTaskTitleLength)
}

func DisplayName(raw *string) (*string, error) {
	return optional(raw, "Display name", MaxDisplayNameLength)
}
