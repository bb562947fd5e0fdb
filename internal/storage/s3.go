// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage publishes export artifacts to S3-compatible object
// storage. It wraps the AWS SDK v2 and is configured for path-style access
// (required by CEPH/Hetzner).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Options configures a Client.
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is an optional CDN or direct URL serving the bucket. When
	// empty, published links are pre-signed.
	PublicURL string
	LinkTTL   time.Duration
}

// Client uploads artifacts to a single exports bucket.
type Client struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
	linkTTL   time.Duration
}

// New creates an S3 storage client with path-style addressing. Returns
// (nil, nil) if endpoint or credentials are empty, allowing the app to
// start without publishing.
func New(opts Options) (*Client, error) {
	if opts.Endpoint == "" || opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, nil
	}
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}
	if opts.LinkTTL <= 0 {
		opts.LinkTTL = 24 * time.Hour
	}

	s3Client := s3.New(s3.Options{
		Region:       opts.Region,
		BaseEndpoint: aws.String(strings.TrimRight(opts.Endpoint, "/")),
		Credentials:  credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    opts.Bucket,
		publicURL: strings.TrimRight(opts.PublicURL, "/"),
		linkTTL:   opts.LinkTTL,
	}, nil
}

// Published describes an uploaded artifact.
type Published struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// ObjectKey builds a unique key for an artifact: exports/<date>/<uuid>/<filename>.
func ObjectKey(filename string, now time.Time) string {
	return path.Join("exports", now.UTC().Format("2006/01/02"), uuid.NewString(), path.Base(filename))
}

// Publish uploads data under a fresh key and returns a link to it.
func (c *Client) Publish(ctx context.Context, filename, contentType string, data []byte) (*Published, error) {
	now := time.Now()
	key := ObjectKey(filename, now)
	if err := c.Upload(ctx, key, contentType, data); err != nil {
		return nil, err
	}

	if c.publicURL != "" {
		return &Published{Key: key, URL: c.publicURL + "/" + key}, nil
	}
	url, err := c.PresignedURL(ctx, key, c.linkTTL)
	if err != nil {
		return nil, err
	}
	return &Published{Key: key, URL: url, ExpiresAt: now.Add(c.linkTTL).UTC()}, nil
}

// Upload stores an object in the exports bucket.
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(c.bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(data),
		ContentLength:      aws.Int64(int64(len(data))),
		ContentType:        aws.String(contentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(key))),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// Delete removes an object from the exports bucket.
func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// PresignedURL generates a pre-signed GET URL valid for expires (max 7
// days per S3 spec).
func (c *Client) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s/%s: %w", c.bucket, key, err)
	}
	return req.URL, nil
}

// Bucket returns the exports bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
