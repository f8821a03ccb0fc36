// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/mattermost/mattermost-server/v5/shared/mlog"
	"github.com/pkg/errors"

	"github.com/cbtdigital/ideasync/model"
)

const (
	inputPrefix     = "Input/"
	processedPrefix = "Processed/"
	invalidPrefix   = "Invalid/"
	jsonSuffix      = ".json"
)

// ProcessRecord runs one submission through validate, route, upsert, link and
// relocate. The returned result is the terminal outcome reported back to the
// invoking platform. A non-nil error means the invocation failed before or
// outside the recoverable branches (secret fetch, notification publish or
// relocation itself); the file, if any, is left where it was and redelivery
// is the retry mechanism.
func (s *Server) ProcessRecord(ctx context.Context, bucket, key string) (*model.Result, error) {
	token, err := s.Secrets.Get(ctx, s.Config.GithubTokenSecret)
	if err != nil {
		secretErr := &SecretError{Name: s.Config.GithubTokenSecret, Err: err}
		return &model.Result{Status: model.StatusFailed, Error: secretErr.Error()}, secretErr
	}

	if !strings.HasPrefix(key, inputPrefix) || !strings.HasSuffix(key, jsonSuffix) {
		mlog.Info("skipping file", mlog.String("key", key))
		return &model.Result{Status: model.StatusSkipped}, nil
	}

	submission, validationErr := s.fetchSubmission(ctx, bucket, key)
	if validationErr != nil {
		mlog.Error("validation failed", mlog.String("key", key), mlog.Err(validationErr))
		message := fmt.Sprintf("Invalid JSON file: %s\nError: %s", key, validationErr.Error())
		return s.reject(ctx, bucket, key, model.StatusInvalid, validationErr, message)
	}

	tag := submission.NormalizedTag()
	route, ok := s.Config.GetRoute(tag)
	if !ok {
		routingErr := &RoutingError{Tag: tag}
		mlog.Error("routing failed", mlog.String("key", key), mlog.String("tag", tag))
		message := fmt.Sprintf("Invalid tag in JSON file: %s\nError: %s", key, routingErr.Error())
		return s.reject(ctx, bucket, key, model.StatusInvalid, routingErr, message)
	}

	client := s.newGithubClient(token)

	issueNumber, nodeID, syncErr := s.syncIssue(ctx, client, s.Config.Org, route.Repo, submission)
	if syncErr == nil {
		if _, linkErr := client.Projects.AddItemByID(ctx, route.ProjectID, nodeID); linkErr != nil {
			syncErr = &TrackerError{Op: "add issue to project", Err: linkErr}
		}
	}
	if syncErr != nil {
		mlog.Error("tracker sync failed", mlog.String("key", key), mlog.Err(syncErr))
		message := fmt.Sprintf("Error processing file: %s\nError: %s", key, syncErr.Error())
		return s.reject(ctx, bucket, key, model.StatusFailed, syncErr, message)
	}

	if err := s.moveObject(ctx, bucket, key, processedPrefix); err != nil {
		return nil, err
	}

	mlog.Info("submission processed",
		mlog.String("key", key),
		mlog.String("repo", route.Repo),
		mlog.Int("issue", issueNumber))

	return &model.Result{
		Status:      model.StatusSuccess,
		Repo:        s.Config.Org + "/" + route.Repo,
		IssueNumber: issueNumber,
	}, nil
}

func (s *Server) fetchSubmission(ctx context.Context, bucket, key string) (*model.Submission, error) {
	data, err := s.ObjectStore.Get(ctx, bucket, key)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	submission, err := model.SubmissionFromJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	if err := submission.IsValid(); err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	return submission, nil
}

// reject funnels every recoverable failure branch through the same pair of
// side effects: an operator notification and relocation under Invalid/.
func (s *Server) reject(ctx context.Context, bucket, key, status string, cause error, message string) (*model.Result, error) {
	if err := s.Notifier.Publish(ctx, s.Config.SNSTopicARN, message); err != nil {
		return nil, errors.Wrap(err, "unable to publish failure notification")
	}
	if err := s.moveObject(ctx, bucket, key, invalidPrefix); err != nil {
		return nil, err
	}

	return &model.Result{Status: status, Error: cause.Error()}, nil
}

// moveObject relocates bucket/key under destPrefix, keeping the basename.
// Copy and delete are two calls; a crash in between leaves the file in both
// places.
func (s *Server) moveObject(ctx context.Context, bucket, key, destPrefix string) error {
	dstKey := destPrefix + path.Base(key)
	if err := s.ObjectStore.Copy(ctx, bucket, key, dstKey); err != nil {
		return err
	}
	if err := s.ObjectStore.Delete(ctx, bucket, key); err != nil {
		return err
	}

	mlog.Debug("moved object", mlog.String("from", key), mlog.String("to", dstKey))
	return nil
}
