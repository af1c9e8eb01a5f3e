package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/joeydtaylor/strum/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/strum/pkg/internal/types"
)

// S3Config describes how to reach a tone bucket.
type S3Config struct {
	Region string
	// Endpoint overrides both S3 and STS, e.g. LocalStack or MinIO.
	Endpoint       string
	ForcePathStyle bool

	// Static credentials. Empty AccessKey uses the default provider chain.
	AccessKey    string
	SecretKey    string
	SessionToken string

	// RoleARN, when set, is assumed through STS on top of the base credentials.
	RoleARN     string
	SessionName string
	ExternalID  string
	Duration    time.Duration
	// WebIdentityTokenFile switches role assumption to AssumeRoleWithWebIdentity.
	WebIdentityTokenFile string
}

func (c S3Config) loaders() []func(*config.LoadOptions) error {
	var loaders []func(*config.LoadOptions) error
	if c.Region != "" {
		loaders = append(loaders, config.WithRegion(c.Region))
	}
	if c.AccessKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, c.SessionToken),
		))
	}
	if c.Endpoint != "" {
		loaders = append(loaders, config.WithBaseEndpoint(c.Endpoint))
	}
	return loaders
}

// NewS3Client loads AWS configuration per cfg and returns an S3 client,
// assuming cfg.RoleARN first when it is set.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	base, err := config.LoadDefaultConfig(ctx, cfg.loaders()...)
	if err != nil {
		return nil, fmt.Errorf("builder: load aws config: %w", err)
	}
	if cfg.RoleARN != "" {
		base.Credentials = assumeRoleProvider(sts.NewFromConfig(base), cfg)
	}
	return s3.NewFromConfig(base, func(o *s3.Options) { o.UsePathStyle = cfg.ForcePathStyle }), nil
}

// NewS3ClientAssumeRole creates an S3 client by assuming roleARN via STS.
// sourceCreds are used to call STS; nil selects the default chain.
func NewS3ClientAssumeRole(
	ctx context.Context,
	region string,
	roleARN string,
	sessionName string,
	duration time.Duration,
	externalID string,
	sourceCreds aws.CredentialsProvider,
	endpoint string,
	forcePathStyle bool,
) (*s3.Client, error) {
	if roleARN == "" {
		return nil, fmt.Errorf("builder: role ARN is required")
	}
	cfg := S3Config{
		Region:         region,
		Endpoint:       endpoint,
		ForcePathStyle: forcePathStyle,
		RoleARN:        roleARN,
		SessionName:    sessionName,
		ExternalID:     externalID,
		Duration:       duration,
	}
	loaders := cfg.loaders()
	if sourceCreds != nil {
		loaders = append(loaders, config.WithCredentialsProvider(sourceCreds))
	}
	base, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("builder: load aws config: %w", err)
	}
	base.Credentials = assumeRoleProvider(sts.NewFromConfig(base), cfg)
	return s3.NewFromConfig(base, func(o *s3.Options) { o.UsePathStyle = forcePathStyle }), nil
}

func assumeRoleProvider(stsClient *sts.Client, cfg S3Config) aws.CredentialsProvider {
	if cfg.WebIdentityTokenFile != "" {
		return aws.NewCredentialsCache(stscreds.NewWebIdentityRoleProvider(
			stsClient,
			cfg.RoleARN,
			stscreds.IdentityTokenFile(cfg.WebIdentityTokenFile),
			func(o *stscreds.WebIdentityRoleOptions) {
				if cfg.SessionName != "" {
					o.RoleSessionName = cfg.SessionName
				}
				if cfg.Duration > 0 {
					o.Duration = cfg.Duration
				}
			},
		))
	}
	return aws.NewCredentialsCache(stscreds.NewAssumeRoleProvider(stsClient, cfg.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		if cfg.SessionName != "" {
			o.RoleSessionName = cfg.SessionName
		}
		if cfg.Duration > 0 {
			o.Duration = cfg.Duration
		}
		if cfg.ExternalID != "" {
			o.ExternalID = aws.String(cfg.ExternalID)
		}
	}))
}

type S3Storage = s3client.Client

// NewS3Storage serves tones from bucket and uploads session files to it.
func NewS3Storage(cli *s3.Client, bucket string, options ...types.Option[*S3Storage]) (*S3Storage, error) {
	return s3client.New(cli, bucket, options...)
}

// S3StorageWithTonePrefix sets the key prefix tone refs are resolved under.
func S3StorageWithTonePrefix(prefix string) types.Option[*S3Storage] {
	return s3client.WithTonePrefix(prefix)
}

func S3StorageWithSuffix(suffix string) types.Option[*S3Storage] { return s3client.WithSuffix(suffix) }

// S3StorageWithReadAhead sets the ranged GET window size in bytes.
func S3StorageWithReadAhead(n int64) types.Option[*S3Storage] { return s3client.WithReadAhead(n) }

// S3StorageWithPreload fetches whole tones at Open so playback never waits on the network.
func S3StorageWithPreload(on bool) types.Option[*S3Storage] { return s3client.WithPreload(on) }

func S3StorageWithListPageSize(n int32) types.Option[*S3Storage] {
	return s3client.WithListPageSize(n)
}

func S3StorageWithSessionPrefix(prefix string) types.Option[*S3Storage] {
	return s3client.WithSessionPrefix(prefix)
}

// S3StorageWithSSE sets server-side encryption for session uploads ("AES256" or "aws:kms").
func S3StorageWithSSE(mode string, kmsKeyID string) types.Option[*S3Storage] {
	return s3client.WithSSE(mode, kmsKeyID)
}

func S3StorageWithMaxAttempts(n int) types.Option[*S3Storage] { return s3client.WithMaxAttempts(n) }

func S3StorageWithLogger(l ...types.Logger) types.Option[*S3Storage] {
	return s3client.WithLogger(l...)
}

func S3StorageWithComponentMetadata(name string, id string) types.Option[*S3Storage] {
	return s3client.WithComponentMetadata(name, id)
}
