// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validSubmission() *Submission {
	return &Submission{
		Title:         "Add dark mode",
		IntentGoal:    "Reduce eye strain",
		Value:         "Improves retention",
		TargetQuarter: "Q3",
		Author:        "alice",
		Tag:           " Video ",
	}
}

func TestSubmissionIsValid(t *testing.T) {
	t.Run("complete submission is valid", func(t *testing.T) {
		require.NoError(t, validSubmission().IsValid())
	})

	tests := []struct {
		field string
		strip func(s *Submission)
	}{
		{"title", func(s *Submission) { s.Title = "" }},
		{"intent_goal", func(s *Submission) { s.IntentGoal = "" }},
		{"value", func(s *Submission) { s.Value = "" }},
		{"target_quarter", func(s *Submission) { s.TargetQuarter = "" }},
		{"author", func(s *Submission) { s.Author = "" }},
		{"tag", func(s *Submission) { s.Tag = "" }},
	}

	for _, tc := range tests {
		t.Run("missing "+tc.field, func(t *testing.T) {
			s := validSubmission()
			tc.strip(s)
			err := s.IsValid()
			require.Error(t, err)
			require.Equal(t, "missing or empty field: "+tc.field, err.Error())
		})
	}
}

func TestSubmissionFromJSON(t *testing.T) {
	t.Run("parses a well formed payload", func(t *testing.T) {
		payload := `{"title":"Add dark mode","intent_goal":"Reduce eye strain","value":"Improves retention","target_quarter":"Q3","author":"alice","tag":" Video "}`
		s, err := SubmissionFromJSON(strings.NewReader(payload))
		require.NoError(t, err)
		require.Equal(t, validSubmission(), s)
	})

	t.Run("fails on malformed json", func(t *testing.T) {
		_, err := SubmissionFromJSON(strings.NewReader("{not json"))
		require.Error(t, err)
	})
}

func TestSubmissionNormalizedTag(t *testing.T) {
	require.Equal(t, "video", validSubmission().NormalizedTag())
}

func TestSubmissionIssueBody(t *testing.T) {
	body := validSubmission().IssueBody()
	require.Contains(t, body, "## 🎯 **Goal**\nReduce eye strain")
	require.Contains(t, body, "## 💎 **Value**\nImproves retention")
}

func TestSubmissionIssueLabels(t *testing.T) {
	require.Equal(t, []string{"alice", "video"}, validSubmission().IssueLabels())
}
