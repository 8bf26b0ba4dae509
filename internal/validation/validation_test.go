package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func assertValidationError(t *testing.T, err error, contains string) {
	t.Helper()
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	assert.Contains(t, ve.Message, contains)
}

func TestTitle(t *testing.T) {
	v, err := Title("  hi  ")
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	_, err = Title("")
	assertValidationError(t, err, "Title is required")

	_, err = Title("   ")
	assertValidationError(t, err, "Title is required")

	v, err = Title(strings.Repeat("a", 200))
	require.NoError(t, err)
	assert.Len(t, v, 200)

	_, err = Title(strings.Repeat("a", 201))
	assertValidationError(t, err, "200 characters or less")
}

func TestLengthCountsCharactersNotBytes(t *testing.T) {
	v, err := Title(strings.Repeat("é", 200))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 200), v)
}

func TestRequiredFieldLimits(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string) (string, error)
		max  int
	}{
		{"description", Description, MaxDescriptionLength},
		{"comment", Comment, MaxCommentLength},
		{"discussion title", DiscussionTitle, MaxDiscussionTitleLength},
		{"discussion body", DiscussionBody, MaxDiscussionBodyLength},
		{"discussion reply", DiscussionReply, MaxDiscussionReplyLength},
		{"label name", LabelName, MaxLabelNameLength},
		{"bot name", BotName, MaxBotNameLength},
		{"column title", ColumnTitle, MaxColumnTitleLength},
		{"task title", TaskTitle, MaxTaskTitleLength},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fn(" \t ")
			assertValidationError(t, err, "is required")

			v, err := tc.fn(" " + strings.Repeat("x", tc.max) + " ")
			require.NoError(t, err)
			assert.Len(t, v, tc.max)

			_, err = tc.fn(strings.Repeat("x", tc.max+1))
			assertValidationError(t, err, fmt.Sprintf("%d characters or less", tc.max))
		})
	}
}

func TestOptionalFields(t *testing.T) {
	t.Run("nil and blank map to nil", func(t *testing.T) {
		for _, fn := range []func(*string) (*string, error){OptionalDescription, Bio, BotRole, SystemPrompt, DisplayName, GithubURL, AvatarURL} {
			v, err := fn(nil)
			require.NoError(t, err)
			assert.Nil(t, v)

			v, err = fn(ptr("   "))
			require.NoError(t, err)
			assert.Nil(t, v)
		}
	})

	t.Run("bio is trimmed and bounded", func(t *testing.T) {
		v, err := Bio(ptr("  hello "))
		require.NoError(t, err)
		require.NotNil(t, v)
		assert.Equal(t, "hello", *v)

		v, err = Bio(ptr(strings.Repeat("b", 500)))
		require.NoError(t, err)
		assert.NotNil(t, v)

		_, err = Bio(ptr(strings.Repeat("b", 501)))
		assertValidationError(t, err, "Bio must be 500 characters or less")
	})
}

func TestTags(t *testing.T) {
	t.Run("trims and drops empties", func(t *testing.T) {
		tags, err := Tags(" go , , web,ai ,")
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "web", "ai"}, tags)
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		tags, err := Tags("")
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("ten tags accepted", func(t *testing.T) {
		in := make([]string, 10)
		for i := range in {
			in[i] = fmt.Sprintf("tag%d", i)
		}
		tags, err := Tags(strings.Join(in, ","))
		require.NoError(t, err)
		assert.Equal(t, in, tags)
	})

	t.Run("eleven tags rejected", func(t *testing.T) {
		in := make([]string, 11)
		for i := range in {
			in[i] = fmt.Sprintf("tag%d", i)
		}
		_, err := Tags(strings.Join(in, ","))
		assertValidationError(t, err, "Maximum 10 tags")
	})

	t.Run("tag length bounded", func(t *testing.T) {
		_, err := Tags(strings.Repeat("t", 50))
		require.NoError(t, err)

		_, err = Tags("ok," + strings.Repeat("t", 51))
		assertValidationError(t, err, "50 characters or less")
	})

	t.Run("tag list", func(t *testing.T) {
		tags, err := TagList([]string{" a", "", "b "})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, tags)
	})
}

func TestLabelColor(t *testing.T) {
	for _, c := range LabelColors {
		v, err := LabelColor(" " + c + " ")
		require.NoError(t, err)
		assert.Equal(t, c, v)
	}

	for _, bad := range []string{"", "Red", "#ff0000", "magenta"} {
		_, err := LabelColor(bad)
		assertValidationError(t, err, "Invalid label color")
	}
}

func TestGithubURL(t *testing.T) {
	_, err := GithubURL(ptr("https://gitlab.com/x/y"))
	assertValidationError(t, err, "GitHub URL")

	_, err = GithubURL(ptr("http://github.com/a/b"))
	assertValidationError(t, err, "GitHub URL")

	for _, bare := range []string{"https://github.com/", "https://www.github.com/", "https://github.com//x"} {
		_, err = GithubURL(ptr(bare))
		assertValidationError(t, err, "GitHub URL")
	}

	v, err := GithubURL(nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = GithubURL(ptr("https://github.com/a/b"))
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "https://github.com/a/b", *v)

	v, err = GithubURL(ptr("  https://www.github.com/a  "))
	require.NoError(t, err)
	assert.Equal(t, "https://www.github.com/a", *v)
}

func TestAvatarURL(t *testing.T) {
	for _, ok := range []string{
		"https://cdn.example.com/a.png",
		"http://localhost:9000/avatar",
		"data:image/png;base64,AAAA",
	} {
		v, err := AvatarURL(ptr(ok))
		require.NoError(t, err, ok)
		assert.Equal(t, ok, *v)
	}

	for _, bad := range []string{"not a url", "https://", "/relative/path.png"} {
		_, err := AvatarURL(ptr(bad))
		assertValidationError(t, err, "Invalid avatar URL")
	}

	_, err := AvatarURL(ptr("https://x.io/" + strings.Repeat("a", 2000)))
	assertValidationError(t, err, "2000 characters or less")
}

func TestUUID(t *testing.T) {
	_, err := UUID("not-a-uuid", "")
	assertValidationError(t, err, "ID must be a valid UUID")

	_, err = UUID("not-a-uuid", "Bot ID")
	require.Error(t, err)
	assert.Equal(t, "Bot ID must be a valid UUID", err.Error())

	_, err = UUID("  ", "Idea ID")
	assertValidationError(t, err, "Idea ID is required")

	mixed := "3F2504E0-4f89-11D3-9A0C-0305e82c3301"
	v, err := UUID("  "+mixed+" ", "")
	require.NoError(t, err)
	assert.Equal(t, mixed, v)

	_, err = UUID("{3f2504e0-4f89-11d3-9a0c-0305e82c3301}", "")
	assertValidationError(t, err, "valid UUID")
}

func TestOptionalUUID(t *testing.T) {
	v, err := OptionalUUID(nil, "Parent reply ID")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = OptionalUUID(ptr(""), "Parent reply ID")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = OptionalUUID(ptr("nope"), "Parent reply ID")
	assertValidationError(t, err, "Parent reply ID must be a valid UUID")
}

func TestIsValidationError(t *testing.T) {
	_, err := Title("")
	assert.True(t, IsValidationError(err))
	assert.True(t, IsValidationError(fmt.Errorf("create idea: %w", err)))
	assert.False(t, IsValidationError(fmt.Errorf("boom")))
	assert.False(t, IsValidationError(nil))
}
