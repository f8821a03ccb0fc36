// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/pkg/errors"
)

const defaultGraphQLEndpoint = "https://api.github.com/graphql"

// ProjectsV2 boards are only reachable through GraphQL; the REST client has
// no surface for them.
const addProjectItemMutation = `mutation($projectId: ID!, $contentId: ID!) {
  addProjectV2ItemById(input: {projectId: $projectId, contentId: $contentId}) {
    item {
      id
    }
  }
}`

type graphQLClient struct {
	httpClient *http.Client
	endpoint   string
}

func newGraphQLClient(httpClient *http.Client, endpoint string) *graphQLClient {
	return &graphQLClient{httpClient: httpClient, endpoint: endpoint}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type addProjectItemResponse struct {
	Data struct {
		AddProjectV2ItemByID struct {
			Item struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"addProjectV2ItemById"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// AddItemByID attaches an issue, identified by its global node id, to a
// project board. A non-empty errors list in the response is a hard failure
// even when the transport-level call succeeded.
func (c *graphQLClient) AddItemByID(ctx context.Context, projectID, contentID string) (string, error) {
	payload, err := json.Marshal(&graphQLRequest{
		Query: addProjectItemMutation,
		Variables: map[string]interface{}{
			"projectId": projectID,
			"contentId": contentID,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	r, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = io.Copy(ioutil.Discard, r.Body)
		r.Body.Close()
	}()

	if r.StatusCode != http.StatusOK {
		return "", errors.Errorf("received non-200 status code from graphql endpoint: %v", r.StatusCode)
	}

	var response addProjectItemResponse
	if err := json.NewDecoder(r.Body).Decode(&response); err != nil {
		return "", errors.Wrap(err, "unable to decode graphql response")
	}

	if len(response.Errors) > 0 {
		return "", errors.Errorf("graphql error: %s", response.Errors[0].Message)
	}

	return response.Data.AddProjectV2ItemByID.Item.ID, nil
}
