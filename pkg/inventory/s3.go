package inventory

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hbracken/fedlease/pkg/property"
)

// s3Getter is the slice of the S3 API the loader uses.
type s3Getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Loader loads the property inventory from a JSON-lines object in S3,
// one FederalProperty per line.
type S3Loader struct {
	client s3Getter
	bucket string
	key    string
}

// NewS3Loader builds a loader using the default AWS credential chain.
func NewS3Loader(ctx context.Context, bucket, key, region string) (*S3Loader, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &S3Loader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}, nil
}

// Load fetches the object and decodes it line by line.
func (l *S3Loader) Load(ctx context.Context) ([]*property.FederalProperty, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &l.bucket,
		Key:    &l.key,
	})
	if err != nil {
		return nil, &LoadError{Source: "s3", Err: err}
	}
	defer out.Body.Close()

	props, err := decodeJSONLines(out.Body)
	if err != nil {
		return nil, &LoadError{Source: "s3", Err: err}
	}
	return props, nil
}

// decodeJSONLines reads one JSON-encoded property per line. Blank lines
// are skipped; a malformed line fails the whole load rather than silently
// truncating the dataset.
func decodeJSONLines(r io.Reader) ([]*property.FederalProperty, error) {
	var props []*property.FederalProperty
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var p property.FederalProperty
		if err := json.Unmarshal([]byte(text), &p); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		props = append(props, &p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return props, nil
}
