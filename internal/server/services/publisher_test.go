package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/mediakeeper/internal/common"
	sc "github.com/dmitrijs2005/mediakeeper/internal/server/config"
)

func stubAWSHooks(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPut := putObject
	origAcl := putObjectAcl
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
		putObjectAcl = origAcl
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
}

func testPublisherConfig() *sc.Config {
	return &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000/",
		S3Bucket:       "media",
	}
}

func TestNewObjectPublisher_AppliesConfig(t *testing.T) {
	stubAWSHooks(t)

	var capturedBaseEndpoint string
	var capturedPathStyle bool
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil {
			t.Fatalf("BaseEndpoint not set")
		}
		capturedBaseEndpoint = *opts.BaseEndpoint
		capturedPathStyle = opts.UsePathStyle
		return &s3.Client{}
	}

	p, err := NewObjectPublisher(testPublisherConfig())
	if err != nil {
		t.Fatalf("NewObjectPublisher error: %v", err)
	}
	if capturedBaseEndpoint != "http://127.0.0.1:9000/" {
		t.Fatalf("base endpoint not applied: %q", capturedBaseEndpoint)
	}
	if !capturedPathStyle {
		t.Fatalf("expected path-style addressing")
	}
	if got := p.PublicURL("lesson.mp4"); got != "http://127.0.0.1:9000/media/lesson.mp4" {
		t.Fatalf("unexpected public URL: %q", got)
	}
}

func TestNewObjectPublisher_ConfigLoadError(t *testing.T) {
	stubAWSHooks(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no credentials")
	}

	if _, err := NewObjectPublisher(testPublisherConfig()); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestPublish_WriteThenACLThenURL(t *testing.T) {
	stubAWSHooks(t)

	var wroteBody []byte
	var wroteKey, wroteContentType string
	var aclKey string
	var aclValue types.ObjectCannedACL
	var order []string

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		order = append(order, "put")
		b, err := io.ReadAll(in.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		wroteBody = b
		wroteKey = *in.Key
		wroteContentType = *in.ContentType
		return &s3.PutObjectOutput{}, nil
	}
	putObjectAcl = func(c *s3.Client, ctx context.Context, in *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error) {
		order = append(order, "acl")
		aclKey = *in.Key
		aclValue = in.ACL
		return &s3.PutObjectAclOutput{}, nil
	}

	p, err := NewObjectPublisher(testPublisherConfig())
	if err != nil {
		t.Fatalf("NewObjectPublisher error: %v", err)
	}

	url, err := p.Publish(context.Background(), bytes.NewReader([]byte("payload")), "lesson.mp4", "video/mp4")
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if len(order) != 2 || order[0] != "put" || order[1] != "acl" {
		t.Fatalf("expected write before visibility change, got %v", order)
	}
	if string(wroteBody) != "payload" || wroteKey != "lesson.mp4" || wroteContentType != "video/mp4" {
		t.Fatalf("unexpected put input: key=%q ct=%q body=%q", wroteKey, wroteContentType, wroteBody)
	}
	if aclKey != "lesson.mp4" || aclValue != types.ObjectCannedACLPublicRead {
		t.Fatalf("unexpected acl input: key=%q acl=%q", aclKey, aclValue)
	}
	if url != "http://127.0.0.1:9000/media/lesson.mp4" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestPublish_WriteError(t *testing.T) {
	stubAWSHooks(t)

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("connection reset")
	}
	aclCalled := false
	putObjectAcl = func(c *s3.Client, ctx context.Context, in *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error) {
		aclCalled = true
		return &s3.PutObjectAclOutput{}, nil
	}

	p, err := NewObjectPublisher(testPublisherConfig())
	if err != nil {
		t.Fatalf("NewObjectPublisher error: %v", err)
	}

	_, err = p.Publish(context.Background(), bytes.NewReader(nil), "x.pdf", "application/pdf")
	if !errors.Is(err, common.ErrStorageWrite) {
		t.Fatalf("expected common.ErrStorageWrite, got %v", err)
	}
	if aclCalled {
		t.Fatalf("visibility change must not run after a failed write")
	}
}

func TestPublish_VisibilityChangeError(t *testing.T) {
	stubAWSHooks(t)

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return &s3.PutObjectOutput{}, nil
	}
	putObjectAcl = func(c *s3.Client, ctx context.Context, in *s3.PutObjectAclInput, optFns ...func(*s3.Options)) (*s3.PutObjectAclOutput, error) {
		return nil, errors.New("access denied")
	}

	p, err := NewObjectPublisher(testPublisherConfig())
	if err != nil {
		t.Fatalf("NewObjectPublisher error: %v", err)
	}

	_, err = p.Publish(context.Background(), bytes.NewReader(nil), "x.pdf", "application/pdf")
	if !errors.Is(err, common.ErrVisibilityChange) {
		t.Fatalf("expected common.ErrVisibilityChange, got %v", err)
	}
}
