package services

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kianvosoft/site-backend/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultMediaBaseURL = "/media"

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// MediaResolver turns stored image references into URLs a browser can load.
// Absolute URLs pass through. Object keys are presigned against MEDIA_BUCKET
// when one is configured, otherwise they are joined onto MEDIA_BASE_URL.
type MediaResolver struct {
	baseURL   string
	bucket    string
	expiry    time.Duration
	presigner objectPresigner
	logger    zerolog.Logger
}

// NewMediaResolver serves references from a static base URL.
func NewMediaResolver(baseURL string) *MediaResolver {
	if baseURL == "" {
		baseURL = defaultMediaBaseURL
	}
	return &MediaResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.With().Str("component", "mediaResolver").Logger(),
	}
}

// NewMediaResolverFromConfig builds the resolver for the running service,
// loading AWS credentials only when a bucket is configured.
func NewMediaResolverFromConfig(ctx context.Context, cfg map[string]string) (*MediaResolver, error) {
	m := NewMediaResolver(config.GetString(cfg, "MEDIA_BASE_URL", defaultMediaBaseURL))

	bucket := config.GetString(cfg, "MEDIA_BUCKET", "")
	if bucket == "" {
		return m, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.GetString(cfg, "AWS_REGION", "us-east-1")))
	if err != nil {
		return nil, err
	}
	m.bucket = bucket
	m.expiry = time.Duration(config.GetInt(cfg, "MEDIA_PRESIGN_MINUTES", 60)) * time.Minute
	m.presigner = s3.NewPresignClient(s3.NewFromConfig(awsCfg))
	return m, nil
}

// Resolve returns the public URL of ref, or "" when there is no image.
func (m *MediaResolver) Resolve(ctx context.Context, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	key := strings.TrimLeft(ref, "/")
	if m.presigner != nil {
		req, err := m.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(m.bucket),
			Key:    aws.String(key),
		}, s3.WithPresignExpires(m.expiry))
		if err == nil {
			return req.URL
		}
		m.logger.Warn().Err(err).Str("key", key).Msg("failed to presign media, falling back to base URL")
	}
	return m.baseURL + "/" + key
}
