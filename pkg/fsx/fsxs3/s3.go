package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"

	"github.com/aidul23/agent-mem/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client the file system uses
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3FileSystem stores files as objects in one bucket, under an optional key prefix
type S3FileSystem struct {
	client S3API
	bucket string
	prefix string
}

func NewS3FileSystem(client S3API, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

var _ fsx.FileSystem = (*S3FileSystem)(nil)

func (s *S3FileSystem) key(p string) (string, error) {
	cleaned, err := fsx.CleanPath(p)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return cleaned, nil
	}
	return path.Join(s.prefix, cleaned), nil
}

func (s *S3FileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	key, err := s.key(p)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fsx.ErrWriteFailed(err).WithDetail("bucket", s.bucket).WithDetail("key", key)
	}
	return nil
}

func (s *S3FileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	stream, err := s.ReadFileStream(ctx, p)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fsx.ErrReadFailed(err).WithDetail("path", p)
	}
	return data, nil
}

func (s *S3FileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	key, err := s.key(p)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fsx.ErrFileNotFound().WithDetail("key", key)
		}
		return nil, fsx.ErrReadFailed(err).WithDetail("bucket", s.bucket).WithDetail("key", key)
	}
	return out.Body, nil
}

func (s *S3FileSystem) Exists(ctx context.Context, p string) (bool, error) {
	key, err := s.key(p)
	if err != nil {
		return false, err
	}
	_, err = s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fsx.ErrReadFailed(err).WithDetail("bucket", s.bucket).WithDetail("key", key)
}
