// Package storage signs stored image keys into temporary fetchable URLs.
package storage

import (
	"context"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const urlExpiry = time.Hour

// Some rows store a full public URL instead of a bare object key; strip the
// scheme, host and bucket prefix before signing.
var keyPrefixRe = regexp.MustCompile(`^https?://[^/]+/[^/]+/`)

var (
	presignOnce sync.Once
	presigner   *s3.PresignClient
	presignErr  error
)

func presignClient(ctx context.Context) (*s3.PresignClient, error) {
	presignOnce.Do(func() {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			presignErr = err
			return
		}
		presigner = s3.NewPresignClient(s3.NewFromConfig(cfg))
	})
	return presigner, presignErr
}

func bucket() string {
	if b := os.Getenv("S3_IMAGE_BUCKET"); b != "" {
		return b
	}
	return "deligo.image"
}

// CleanKey normalizes a stored image reference into an object key.
func CleanKey(key string) string {
	return keyPrefixRe.ReplaceAllString(key, "")
}

// DisplayURL returns a presigned GET URL valid for one hour, or an empty
// string for an empty key.
func DisplayURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	client, err := presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket()),
		Key:    aws.String(CleanKey(key)),
	}, func(o *s3.PresignOptions) {
		o.Expires = urlExpiry
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
