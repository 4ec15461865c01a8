package repository

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"career-sync/internal/domain/career"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3TableSource reads the tables as objects under bucket/prefix.
type S3TableSource struct {
	client objectGetter
	bucket string
	prefix string
	names  TableNames
}

func NewS3TableSource(client *s3.Client, bucket, prefix string, names TableNames) *S3TableSource {
	return newS3TableSource(client, bucket, prefix, names)
}

func newS3TableSource(client objectGetter, bucket, prefix string, names TableNames) *S3TableSource {
	return &S3TableSource{
		client: client,
		bucket: strings.TrimSpace(bucket),
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
		names:  names.withDefaults(),
	}
}

func (s *S3TableSource) Name() string { return "s3://" + path.Join(s.bucket, s.prefix) }

func (s *S3TableSource) LoadCorpus(ctx context.Context) (career.Corpus, error) {
	if s.client == nil {
		return career.Corpus{}, errors.New("s3 table source: nil client")
	}
	if s.bucket == "" {
		return career.Corpus{}, errors.New("s3 table source: empty bucket")
	}
	return loadCSVCorpus(ctx, s.names, s.open)
}

func (s *S3TableSource) open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := name
	if s.prefix != "" {
		key = s.prefix + "/" + name
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
