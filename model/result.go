// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package model

import "encoding/json"

const (
	StatusSkipped = "skipped"
	StatusInvalid = "invalid"
	StatusFailed  = "failed"
	StatusSuccess = "success"
)

// Result is the terminal outcome of one pipeline invocation. It is the only
// output channel back to the invoking platform.
type Result struct {
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	Repo        string `json:"repo,omitempty"`
	IssueNumber int    `json:"issue_number,omitempty"`
}

func (o *Result) ToJSON() (string, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
