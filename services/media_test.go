package services

import (
	"context"
	"errors"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
)

type fakePresigner struct {
	err  error
	keys []string
}

func (f *fakePresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, *params.Key)
	return &v4.PresignedHTTPRequest{URL: "https://" + *params.Bucket + ".s3.amazonaws.com/" + *params.Key + "?X-Amz-Signature=abc"}, nil
}

func TestMediaResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("empty reference stays empty", func(t *testing.T) {
		assert.Equal(t, "", NewMediaResolver("").Resolve(ctx, "  "))
	})

	t.Run("absolute urls pass through", func(t *testing.T) {
		m := NewMediaResolver("https://cdn.kianvosoft.com")
		assert.Equal(t, "http://example.com/a.png", m.Resolve(ctx, "http://example.com/a.png"))
		assert.Equal(t, "https://example.com/a.png", m.Resolve(ctx, "https://example.com/a.png"))
	})

	t.Run("keys are joined onto the base url", func(t *testing.T) {
		m := NewMediaResolver("https://cdn.kianvosoft.com/")
		assert.Equal(t, "https://cdn.kianvosoft.com/blog/a.png", m.Resolve(ctx, "/blog/a.png"))
		assert.Equal(t, "/media/blog/a.png", NewMediaResolver("").Resolve(ctx, "blog/a.png"))
	})

	t.Run("bucket keys are presigned", func(t *testing.T) {
		p := &fakePresigner{}
		m := NewMediaResolver("")
		m.bucket = "kianvo-media"
		m.presigner = p
		assert.Equal(t, "https://kianvo-media.s3.amazonaws.com/partners/acme.png?X-Amz-Signature=abc", m.Resolve(ctx, "partners/acme.png"))
		assert.Equal(t, []string{"partners/acme.png"}, p.keys)
	})

	t.Run("presign failure falls back to the base url", func(t *testing.T) {
		m := NewMediaResolver("")
		m.bucket = "kianvo-media"
		m.presigner = &fakePresigner{err: errors.New("no credentials")}
		assert.Equal(t, "/media/partners/acme.png", m.Resolve(ctx, "partners/acme.png"))
	})
}

func TestNewMediaResolverFromConfigWithoutBucket(t *testing.T) {
	m, err := NewMediaResolverFromConfig(context.Background(), map[string]string{"MEDIA_BASE_URL": "https://static.kianvosoft.com"})
	assert.NoError(t, err)
	assert.Nil(t, m.presigner)
	assert.Equal(t, "https://static.kianvosoft.com/x.png", m.Resolve(context.Background(), "x.png"))
}
