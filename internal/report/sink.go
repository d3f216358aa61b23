package report

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
)

const contentTypePDF = "application/pdf"

// Sink stores a rendered report and returns where it was written.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) (location string, err error)
	// Kind identifies the sink in metrics ("file", "s3").
	Kind() string
}

// FileName builds a report object name for a household at t.
func FileName(household string, t time.Time) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(household) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "household"
	}
	return fmt.Sprintf("shopping-list-%s-%s.pdf", slug, t.UTC().Format("20060102-150405"))
}

// FileSink writes reports into a directory.
type FileSink struct {
	fs  afero.Fs
	dir string
}

// NewFileSink creates a sink writing into dir on the OS filesystem.
func NewFileSink(dir string) *FileSink {
	return NewFileSinkFs(afero.NewOsFs(), dir)
}

// NewFileSinkFs creates a sink writing into dir on fs.
func NewFileSinkFs(fs afero.Fs, dir string) *FileSink {
	return &FileSink{fs: fs, dir: dir}
}

// Kind returns "file".
func (s *FileSink) Kind() string { return "file" }

// Put writes data to dir/name. Directory components in name are dropped.
func (s *FileSink) Put(_ context.Context, name string, data []byte) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	target := filepath.Join(s.dir, filepath.Base(name))
	if err := afero.WriteFile(s.fs, target, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return target, nil
}

// PutObjectAPI is the part of the S3 client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads reports to a bucket under a key prefix.
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Sink creates a sink using client.
func NewS3Sink(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// NewS3SinkFromRegion loads the default AWS configuration for region and
// creates a sink on a new S3 client.
func NewS3SinkFromRegion(ctx context.Context, region, bucket, prefix string) (*S3Sink, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewS3Sink(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// Kind returns "s3".
func (s *S3Sink) Kind() string { return "s3" }

// Put uploads data as prefix+name and returns its s3:// URI.
func (s *S3Sink) Put(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(s.prefix, path.Base(name))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypePDF),
	})
	if err != nil {
		return "", fmt.Errorf("upload report to s3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
