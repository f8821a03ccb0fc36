// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	config := &Config{
		ListenAddress:     ":8080",
		MetricsServerPort: "9000",
		Org:               "cbtdigital",
		GithubTokenSecret: testSecret,
		SNSTopicARN:       testTopicARN,
		Routes: []*Route{
			{Tag: "broadband", Repo: "broadband-intake", ProjectID: "PROJ_BB"},
			{Tag: "video", Repo: "video-intake", ProjectID: "PROJ_VID"},
		},
		AWSRegion: "us-east-1",
	}
	return config
}

func TestNew(t *testing.T) {
	t.Run("Should wire routes and collaborators", func(t *testing.T) {
		s, err := New(testConfig(), nil)
		require.NoError(t, err)
		require.NotNil(t, s.Router)
		require.NotNil(t, s.ObjectStore)
		require.NotNil(t, s.Secrets)
		require.NotNil(t, s.Notifier)
		require.NotNil(t, s.newGithubClient("token"))
	})

	t.Run("Should reject an invalid config", func(t *testing.T) {
		config := testConfig()
		config.Routes = nil
		_, err := New(config, nil)
		require.Error(t, err)
	})
}

func TestHealthzHandler(t *testing.T) {
	s, err := New(testConfig(), nil)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"ok"}`, string(b))
}

func TestVersionHandler(t *testing.T) {
	s, err := New(testConfig(), nil)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(b), `"version"`)
}
