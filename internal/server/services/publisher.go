package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/mediakeeper/internal/common"
	sc "github.com/dmitrijs2005/mediakeeper/internal/server/config"
)

// Indirections over the AWS SDK so tests can substitute fakes.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	putObjectAcl = func(c *s3.Client, ctx context.Context, in *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error) {
		return c.PutObjectAcl(ctx, in, optFns...)
	}
)

// ObjectPublisher stores uploaded byte streams in an S3-compatible bucket
// and makes them world-readable. The client is created once at startup and
// shared by all requests.
type ObjectPublisher struct {
	client       *s3.Client
	bucket       string
	baseEndpoint string
}

// NewObjectPublisher builds the shared S3 client from server config.
func NewObjectPublisher(cfg *sc.Config) (*ObjectPublisher, error) {
	awsCfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,     // MINIO_ROOT_USER
			cfg.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &ObjectPublisher{
		client:       client,
		bucket:       cfg.S3Bucket,
		baseEndpoint: strings.TrimRight(cfg.S3BaseEndpoint, "/"),
	}, nil
}

// Publish writes body to the bucket under name in a single pass, makes the
// object world-readable, and returns its public URL.
//
// The write is non-resumable: a transport failure mid-stream fails the whole
// call. A failed write yields common.ErrStorageWrite; a failed visibility
// change yields common.ErrVisibilityChange and leaves the stored object
// behind unpublished. Neither step is retried. The object is fully public
// before the returned URL exists anywhere else in the system, so a catalog
// entry can only ever reference a readable object.
func (p *ObjectPublisher) Publish(ctx context.Context, body io.Reader, name, contentType string) (string, error) {

	_, err := putObject(p.client, ctx, &s3.PutObjectInput{
		Bucket:      &p.bucket,
		Key:         &name,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrStorageWrite, err)
	}

	_, err = putObjectAcl(p.client, ctx, &s3.PutObjectAclInput{
		Bucket: &p.bucket,
		Key:    &name,
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrVisibilityChange, err)
	}

	return p.PublicURL(name), nil
}

// PublicURL returns the deterministic path-style URL for an object.
func (p *ObjectPublisher) PublicURL(name string) string {
	return fmt.Sprintf("%s/%s/%s", p.baseEndpoint, p.bucket, name)
}
