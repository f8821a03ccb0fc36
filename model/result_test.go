// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultToJSON(t *testing.T) {
	t.Run("success result carries repo and issue number", func(t *testing.T) {
		r := &Result{
			Status:      StatusSuccess,
			Repo:        "cbtdigital/video-platform",
			IssueNumber: 42,
		}

		b, err := r.ToJSON()
		require.NoError(t, err)
		require.JSONEq(t, `{"status":"success","repo":"cbtdigital/video-platform","issue_number":42}`, b)
	})

	t.Run("empty fields are omitted", func(t *testing.T) {
		r := &Result{Status: StatusSkipped}

		b, err := r.ToJSON()
		require.NoError(t, err)
		require.JSONEq(t, `{"status":"skipped"}`, b)
	})

	t.Run("failure result carries the error", func(t *testing.T) {
		r := &Result{Status: StatusFailed, Error: "something broke"}

		b, err := r.ToJSON()
		require.NoError(t, err)
		require.JSONEq(t, `{"status":"failed","error":"something broke"}`, b)
	})
}
