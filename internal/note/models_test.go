package note

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewNoteStampsBothDates(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := New("title", "body", nil, now)
	require.Equal(t, now, n.CreatedDate)
	require.Equal(t, now, n.UpdatedDate)
	require.True(t, n.ID.IsZero())
}

func TestValidateTrimsAndDefaultsTags(t *testing.T) {
	n := New("  shopping  ", "\tmilk, eggs\n", nil, time.Now())
	require.NoError(t, n.Validate())
	require.Equal(t, "shopping", n.Title)
	require.Equal(t, "milk, eggs", n.Content)
	require.NotNil(t, n.Tags)
	require.Empty(t, n.Tags)
}

func TestValidateRejectsBlankFields(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		content string
		fields  []string
	}{
		{"missing title", "", "body", []string{"title"}},
		{"blank title", "   ", "body", []string{"title"}},
		{"blank content", "title", " \n ", []string{"content"}},
		{"both blank", "", "", []string{"title", "content"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := New(tc.title, tc.content, nil, time.Now()).Validate()
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			require.Len(t, ve.Fields, len(tc.fields))
			for i, f := range tc.fields {
				require.Equal(t, f, ve.Fields[i].Field)
			}
			// one message per failing field
			require.Len(t, strings.Split(err.Error(), "\n"), len(tc.fields))
		})
	}
}

func TestValidateRejectsUpdatedBeforeCreated(t *testing.T) {
	now := time.Now()
	n := New("title", "body", nil, now)
	n.UpdatedDate = now.Add(-time.Hour)

	err := n.Validate()
	require.Error(t, err)
	require.True(t, IsValidation(err))
	require.Contains(t, err.Error(), "updated_date")
}

func TestValidateRequiresDates(t *testing.T) {
	n := &Note{Title: "t", Content: "c"}
	err := n.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "created_date is required")
	require.Contains(t, err.Error(), "updated_date is required")
}

func TestValidateReplacementIgnoresCreatedDate(t *testing.T) {
	n := &Note{Title: "T2", Content: "C2", Tags: []string{"x"}, UpdatedDate: time.Now()}
	require.NoError(t, n.ValidateReplacement())

	n.Title = " "
	require.Error(t, n.ValidateReplacement())
}

func TestCleanTags(t *testing.T) {
	got := CleanTags([]string{" work ", "", "home", "work", "  "})
	require.Equal(t, []string{"work", "home"}, got)
	require.Empty(t, CleanTags(nil))
}
