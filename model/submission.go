// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package model

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Submission is the idea submission payload dropped into the intake bucket.
// All six fields are required and must be non-empty.
type Submission struct {
	Title         string `json:"title"`
	IntentGoal    string `json:"intent_goal"`
	Value         string `json:"value"`
	TargetQuarter string `json:"target_quarter"`
	Author        string `json:"author"`
	Tag           string `json:"tag"`
}

func SubmissionFromJSON(data io.Reader) (*Submission, error) {
	var submission Submission
	if err := json.NewDecoder(data).Decode(&submission); err != nil {
		return nil, err
	}

	return &submission, nil
}

func (o *Submission) IsValid() error {
	fields := []struct {
		name  string
		value string
	}{
		{"title", o.Title},
		{"intent_goal", o.IntentGoal},
		{"value", o.Value},
		{"target_quarter", o.TargetQuarter},
		{"author", o.Author},
		{"tag", o.Tag},
	}

	for _, field := range fields {
		if field.value == "" {
			return fmt.Errorf("missing or empty field: %s", field.name)
		}
	}

	return nil
}

// NormalizedTag is the routing key: lowercased and trimmed.
func (o *Submission) NormalizedTag() string {
	return strings.ToLower(strings.TrimSpace(o.Tag))
}

// IssueBody renders the submission as the tracked issue's markdown body.
func (o *Submission) IssueBody() string {
	return fmt.Sprintf("## 🎯 **Goal**\n%s\n\n## 💎 **Value**\n%s", o.IntentGoal, o.Value)
}

// IssueLabels is the wholesale label set applied to the tracked issue.
func (o *Submission) IssueLabels() []string {
	return []string{o.Author, o.NormalizedTag()}
}
