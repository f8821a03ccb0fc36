// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import "context"

// ObjectStore is the bucket holding submission files. Copy plus Delete is the
// only move primitive the store offers; the pair is not atomic.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Copy(ctx context.Context, bucket, srcKey, dstKey string) error
	Delete(ctx context.Context, bucket, key string) error
}

// SecretSource resolves named secrets. The tracker token is fetched through
// it on every invocation; nothing is cached across invocations.
type SecretSource interface {
	Get(ctx context.Context, name string) (string, error)
}

// Notifier publishes failure alerts to the operations topic.
type Notifier interface {
	Publish(ctx context.Context, topicARN, message string) error
}
