// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mattermost/mattermost-server/v5/shared/mlog"
	"github.com/pkg/errors"

	"github.com/cbtdigital/ideasync/model"
)

// storageEvent is the object-created notification delivered by the platform.
// The shape mirrors the S3 event notification format.
type storageEvent struct {
	Records []storageEventRecord `json:"Records"`
}

type storageEventRecord struct {
	S3 struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key string `json:"key"`
		} `json:"object"`
	} `json:"s3"`
}

func storageEventFromJSON(data io.Reader) (*storageEvent, error) {
	var event storageEvent
	if err := json.NewDecoder(data).Decode(&event); err != nil {
		return nil, err
	}

	if len(event.Records) == 0 {
		return nil, errors.New("storage event has no records")
	}

	return &event, nil
}

func (s *Server) eventHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout*time.Second)
	defer cancel()

	deliveryID := uuid.NewString()

	event, err := storageEventFromJSON(r.Body)
	if err != nil {
		mlog.Error("could not parse storage event", mlog.String("delivery_id", deliveryID), mlog.Err(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// One result per invocation: only the first record is processed. Extra
	// records are dropped loudly so the choice stays visible in operation.
	if len(event.Records) > 1 {
		mlog.Warn("dropping extra records from storage event",
			mlog.String("delivery_id", deliveryID),
			mlog.Int("dropped", len(event.Records)-1))
	}

	record := event.Records[0]
	bucket := record.S3.Bucket.Name
	key := record.S3.Object.Key

	mlog.Info("handle storage event",
		mlog.String("delivery_id", deliveryID),
		mlog.String("bucket", bucket),
		mlog.String("key", key))

	start := time.Now()
	result, fatalErr := s.ProcessRecord(ctx, bucket, key)

	if s.Metrics != nil {
		elapsed := float64(time.Since(start)) / float64(time.Second)
		status := "error"
		if result != nil {
			status = result.Status
		}
		s.Metrics.ObservePipelineDuration(status, elapsed)
		s.Metrics.IncreasePipelineOutcome(status)
	}

	if fatalErr != nil {
		mlog.Error("invocation failed", mlog.String("delivery_id", deliveryID), mlog.Err(fatalErr))
		if result == nil {
			http.Error(w, fatalErr.Error(), http.StatusInternalServerError)
			return
		}
		// The result body still describes the outcome; 500 invites redelivery.
		writeResult(w, http.StatusInternalServerError, result, deliveryID)
		return
	}

	writeResult(w, http.StatusOK, result, deliveryID)
}

func writeResult(w http.ResponseWriter, statusCode int, result *model.Result, deliveryID string) {
	body, err := result.ToJSON()
	if err != nil {
		mlog.Error("could not write result", mlog.String("delivery_id", deliveryID), mlog.Err(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}
