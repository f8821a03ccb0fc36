// Copyright (c) 2024-present CBT Digital, Inc. All Rights Reserved.
// See License.txt for license information.

package server

import (
	"context"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/sns"
	"github.com/pkg/errors"
)

type s3ObjectStore struct {
	svc *s3.S3
}

func newS3ObjectStore(sess *session.Session) *s3ObjectStore {
	return &s3ObjectStore{svc: s3.New(sess)}
}

func (s *s3ObjectStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to get object %s/%s", bucket, key)
	}
	defer out.Body.Close()

	data, err := ioutil.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read object %s/%s", bucket, key)
	}

	return data, nil
}

func (s *s3ObjectStore) Copy(ctx context.Context, bucket, srcKey, dstKey string) error {
	_, err := s.svc.CopyObjectWithContext(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(bucket),
		CopySource: aws.String(bucket + "/" + srcKey),
		Key:        aws.String(dstKey),
	})
	if err != nil {
		return errors.Wrapf(err, "unable to copy object %s/%s to %s", bucket, srcKey, dstKey)
	}

	return nil
}

func (s *s3ObjectStore) Delete(ctx context.Context, bucket, key string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errors.Wrapf(err, "unable to delete object %s/%s", bucket, key)
	}

	return nil
}

type secretsManagerSource struct {
	svc *secretsmanager.SecretsManager
}

func newSecretsManagerSource(sess *session.Session) *secretsManagerSource {
	return &secretsManagerSource{svc: secretsmanager.New(sess)}
}

func (s *secretsManagerSource) Get(ctx context.Context, name string) (string, error) {
	out, err := s.svc.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		return "", err
	}
	if out.SecretString == nil {
		return "", errors.Errorf("secret %s has no string value", name)
	}

	return *out.SecretString, nil
}

type snsNotifier struct {
	svc *sns.SNS
}

func newSNSNotifier(sess *session.Session) *snsNotifier {
	return &snsNotifier{svc: sns.New(sess)}
}

func (n *snsNotifier) Publish(ctx context.Context, topicARN, message string) error {
	_, err := n.svc.PublishWithContext(ctx, &sns.PublishInput{
		TopicArn: aws.String(topicARN),
		Message:  aws.String(message),
	})
	if err != nil {
		return errors.Wrapf(err, "unable to publish to %s", topicARN)
	}

	return nil
}
