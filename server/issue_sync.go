// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"

	"github.com/google/go-github/v39/github"
	"github.com/mattermost/mattermost-server/v5/shared/mlog"

	"github.com/cbtdigital/ideasync/model"
)

const issueListPageSize = 100

// syncIssue upserts the tracked issue for a submission: an issue whose title
// matches exactly is updated in place, otherwise a new one is created. Either
// path resolves the milestone first. Returns the issue number and its global
// node id for project linking.
func (s *Server) syncIssue(ctx context.Context, client *GithubClient, owner, repo string, submission *model.Submission) (int, string, error) {
	milestone, err := s.getOrCreateMilestone(ctx, client, owner, repo, submission.TargetQuarter)
	if err != nil {
		return 0, "", &TrackerError{Op: "resolve milestone", Err: err}
	}

	existing, err := s.findIssueByTitle(ctx, client, owner, repo, submission.Title)
	if err != nil {
		return 0, "", &TrackerError{Op: "list issues", Err: err}
	}

	labels := submission.IssueLabels()
	request := &github.IssueRequest{
		Body:      github.String(submission.IssueBody()),
		Labels:    &labels,
		Milestone: github.Int(milestone),
	}

	if existing != nil {
		issue, _, err := client.Issues.Edit(ctx, owner, repo, existing.GetNumber(), request)
		if err != nil {
			return 0, "", &TrackerError{Op: "update issue", Err: err}
		}
		mlog.Info("updated existing issue",
			mlog.String("repo", repo),
			mlog.Int("issue", existing.GetNumber()))
		return existing.GetNumber(), issue.GetNodeID(), nil
	}

	request.Title = github.String(submission.Title)
	issue, _, err := client.Issues.Create(ctx, owner, repo, request)
	if err != nil {
		return 0, "", &TrackerError{Op: "create issue", Err: err}
	}
	mlog.Info("created issue",
		mlog.String("repo", repo),
		mlog.Int("issue", issue.GetNumber()))

	return issue.GetNumber(), issue.GetNodeID(), nil
}

// findIssueByTitle scans a single page of the 100 most recent issues in any
// state for an exact, case-sensitive title match. Older issues are not
// consulted; at the intake volumes this service handles that is an accepted
// limit.
func (s *Server) findIssueByTitle(ctx context.Context, client *GithubClient, owner, repo, title string) (*github.Issue, error) {
	issues, _, err := client.Issues.ListByRepo(ctx, owner, repo, &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: issueListPageSize},
	})
	if err != nil {
		return nil, err
	}

	for _, issue := range issues {
		if issue.GetTitle() == title {
			return issue, nil
		}
	}

	return nil, nil
}

// getOrCreateMilestone resolves a milestone number by exact title, creating
// the milestone when absent. Lookup and create are two calls with no guard in
// between; concurrent invocations can race and create duplicates.
func (s *Server) getOrCreateMilestone(ctx context.Context, client *GithubClient, owner, repo, title string) (int, error) {
	milestones, _, err := client.Issues.ListMilestones(ctx, owner, repo, &github.MilestoneListOptions{
		State: "all",
	})
	if err != nil {
		return 0, err
	}

	for _, milestone := range milestones {
		if milestone.GetTitle() == title {
			return milestone.GetNumber(), nil
		}
	}

	milestone, _, err := client.Issues.CreateMilestone(ctx, owner, repo, &github.Milestone{
		Title: github.String(title),
	})
	if err != nil {
		return 0, err
	}
	mlog.Info("created milestone", mlog.String("repo", repo), mlog.String("title", title))

	return milestone.GetNumber(), nil
}
