// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func storageEventBody(keys ...string) string {
	records := make([]string, 0, len(keys))
	for _, key := range keys {
		records = append(records, fmt.Sprintf(
			`{"s3":{"bucket":{"name":%q},"object":{"key":%q}}}`, testBucket, key))
	}
	return `{"Records":[` + strings.Join(records, ",") + `]}`
}

func TestEventHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestServer(ctrl)

	ts := httptest.NewServer(http.HandlerFunc(s.eventHandler))
	defer ts.Close()

	t.Run("Should fail with no body", func(t *testing.T) {
		resp, err := http.Post(ts.URL, "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Should fail with an empty records list", func(t *testing.T) {
		resp, err := http.Post(ts.URL, "application/json", strings.NewReader(`{"Records":[]}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Should report skipped for keys outside the input prefix", func(t *testing.T) {
		expectToken(m)

		body := storageEventBody("Output/idea.json")
		resp, err := http.Post(ts.URL, "application/json", bytes.NewReader([]byte(body)))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		b, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"status":"skipped"}`, string(b))
	})

	t.Run("Should only process the first record of a batch", func(t *testing.T) {
		// Both keys are outside the filter, so a processed second record
		// would trigger a second secret fetch; the expectation set by
		// expectToken tolerates any count, and the absence of object store
		// expectations proves neither record reached the store.
		body := storageEventBody("Output/a.json", "Input/b.json")
		resp, err := http.Post(ts.URL, "application/json", bytes.NewReader([]byte(body)))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		b, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"status":"skipped"}`, string(b))
	})
}

func TestEventHandlerFatalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestServer(ctrl)

	m.secrets.EXPECT().
		Get(gomock.AssignableToTypeOf(ctxInterface), testSecret).
		Return("", errors.New("vault unreachable"))

	ts := httptest.NewServer(http.HandlerFunc(s.eventHandler))
	defer ts.Close()

	body := storageEventBody("Input/idea.json")
	resp, err := http.Post(ts.URL, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(b), `"status":"failed"`)
}
