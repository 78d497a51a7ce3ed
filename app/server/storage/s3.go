package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	gopath "path"
	"strings"

	"github.com/MarcosGomesDev/FileStreamAPI/app/server/constants"
	"github.com/MarcosGomesDev/FileStreamAPI/app/server/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 serves one user's bucket on an S3-compatible store (Supabase, minio).
// The user's client id/secret act as the access key pair.
type S3 struct {
	api      *s3.Client
	bucket   string
	endpoint string
}

var _ Client = (*S3)(nil)

func NewS3(ctx context.Context, creds *models.StorageAuth, endpoint, region, bucket string) (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			creds.ClientID,
			creds.ClientSecret,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &S3{api: api, bucket: bucket, endpoint: endpoint}, nil
}

func (c *S3) Folders(ctx context.Context) ([]Entry, error) {
	out, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.bucket),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		return nil, &ProviderError{Op: "list folders", Message: err.Error()}
	}

	var folders []Entry
	for _, prefix := range out.CommonPrefixes {
		key := strings.TrimSuffix(aws.ToString(prefix.Prefix), "/")
		folders = append(folders, Entry{
			Name: gopath.Base(key),
			Path: key,
			Tag:  TagFolder,
		})
	}

	return folders, nil
}

func (c *S3) List(ctx context.Context, path, cursor string) (*Page, error) {
	if path == "" {
		return nil, ErrMissingPath
	}

	prefix := strings.Trim(path, "/") + "/"
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(c.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
		MaxKeys:   aws.Int32(constants.ListPageSize),
	}
	if cursor != "" {
		input.ContinuationToken = aws.String(cursor)
	}

	out, err := c.api.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, &ProviderError{Op: "list folder", Message: err.Error()}
	}

	page := &Page{
		Cursor:  aws.ToString(out.NextContinuationToken),
		HasMore: aws.ToBool(out.IsTruncated),
	}
	for _, prefixEntry := range out.CommonPrefixes {
		key := strings.TrimSuffix(aws.ToString(prefixEntry.Prefix), "/")
		page.Entries = append(page.Entries, Entry{
			Name: gopath.Base(key),
			Path: key,
			Tag:  TagFolder,
		})
	}
	for _, object := range out.Contents {
		key := aws.ToString(object.Key)
		if key == prefix {
			// placeholder object representing the folder itself
			continue
		}
		page.Entries = append(page.Entries, Entry{
			Name: gopath.Base(key),
			Path: key,
			Tag:  TagFile,
		})
	}

	return page, nil
}

func (c *S3) CreateFolder(ctx context.Context, path string) error {
	if path == "" {
		return ErrMissingPath
	}

	key := strings.Trim(path, "/") + "/"
	if _, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(nil),
	}); err != nil {
		return &ProviderError{Op: "create folder", Message: err.Error()}
	}

	return nil
}

func (c *S3) Upload(ctx context.Context, path string, content []byte) (*Upload, error) {
	if path == "" {
		return nil, ErrMissingPath
	}

	key := strings.Trim(path, "/")
	if _, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(content),
	}); err != nil {
		return nil, &ProviderError{Op: "upload", Message: err.Error()}
	}

	publicURL, _ := c.GetURL(ctx, key)

	return &Upload{
		Path:      key,
		PublicURL: publicURL,
	}, nil
}

// GetURL builds the bucket's public object URL; nothing is signed, matching
// a public Supabase bucket.
func (c *S3) GetURL(_ context.Context, path string) (string, error) {
	if path == "" {
		return "", ErrMissingPath
	}

	key := strings.Trim(path, "/")
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key), nil
}

func (c *S3) Download(ctx context.Context, path string) (*File, error) {
	if path == "" {
		return nil, ErrMissingPath
	}

	key := strings.Trim(path, "/")
	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &ProviderError{Op: "download", Message: err.Error()}
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &ProviderError{Op: "download", Message: err.Error()}
	}

	return &File{Name: gopath.Base(key), Content: content}, nil
}
