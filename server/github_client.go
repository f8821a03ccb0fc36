// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"

	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"

	"github.com/cbtdigital/ideasync/metrics"
)

type IssuesService interface {
	Create(ctx context.Context, owner string, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	Edit(ctx context.Context, owner string, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	ListByRepo(ctx context.Context, owner string, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	ListMilestones(ctx context.Context, owner string, repo string, opts *github.MilestoneListOptions) ([]*github.Milestone, *github.Response, error)
	CreateMilestone(ctx context.Context, owner string, repo string, milestone *github.Milestone) (*github.Milestone, *github.Response, error)
}

type ProjectsService interface {
	AddItemByID(ctx context.Context, projectID, contentID string) (string, error)
}

// GithubClient exposes the service interfaces the pipeline needs, plus the
// GraphQL surface for ProjectsV2 boards.
type GithubClient struct {
	Issues   IssuesService
	Projects ProjectsService
}

func NewGithubClient(accessToken string, metricsProvider metrics.Provider) *GithubClient {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	tc := oauth2.NewClient(context.Background(), ts)
	if metricsProvider != nil {
		tc.Transport = metrics.NewTransport(tc.Transport, metricsProvider)
	}
	client := github.NewClient(tc)

	return &GithubClient{
		Issues:   client.Issues,
		Projects: newGraphQLClient(tc, defaultGraphQLEndpoint),
	}
}
