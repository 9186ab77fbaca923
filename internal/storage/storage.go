// Package storage keeps uploaded resumes in object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ObjectStore stores blobs under a key and reports where they went.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
	Provider() string
}

// R2Config mirrors the Cloudflare R2 credentials.
type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

// R2 is an ObjectStore backed by a Cloudflare R2 bucket via the S3 API.
type R2 struct {
	client *s3.Client
	bucket string
}

func NewR2(ctx context.Context, cfg R2Config) (*R2, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &R2{client: client, bucket: cfg.Bucket}, nil
}

func (r *R2) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return fmt.Sprintf("r2://%s/%s", r.bucket, key), nil
}

func (r *R2) Provider() string { return "r2" }

// Noop discards uploads. Used when no bucket is configured.
type Noop struct{}

func (Noop) Put(context.Context, string, string, []byte) (string, error) { return "", nil }
func (Noop) Provider() string                                            { return "none" }

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ResumeKey builds the object key for a user's uploaded resume.
func ResumeKey(clerkID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_.")
	if name == "" {
		name = "resume"
	}
	return fmt.Sprintf("resumes/%s/%s-%s", clerkID, uuid.NewString(), name)
}
