package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	productImageFolder = "products"
	presignTTL         = 15 * time.Minute

	// MaxImageSize caps product image uploads at 5 MiB.
	MaxImageSize = 5 << 20
)

// AllowedImageTypes lists the content types accepted for product images.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// AssetStorage hands out pre-signed S3 upload URLs for catalog assets.
// The backend never proxies image bytes; clients PUT directly to S3 and
// save the resulting file URL on the product.
type AssetStorage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type PresignedUpload struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

func NewAssetStorage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *AssetStorage {
	var cfg aws.Config

	// Static credentials when configured, default chain otherwise
	// (environment, ~/.aws/credentials, IAM role).
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		loaded, err := config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(region),
		)
		if err != nil {
			loaded = aws.Config{Region: region}
		}
		cfg = loaded
	}

	return &AssetStorage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// PresignProductImage generates a pre-signed PUT URL for a product image.
// The object key is randomized so repeated uploads of the same filename
// never overwrite each other.
func (s *AssetStorage) PresignProductImage(ctx context.Context, filename, contentType string) (*PresignedUpload, error) {
	if err := validateContentType(contentType); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%s%s", productImageFolder, uuid.New().String(), ext)

	presignClient := s3.NewPresignClient(s.client)
	presignedReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedUpload{
		UploadURL: presignedReq.URL,
		FileURL:   s.objectURL(key),
		Key:       key,
	}, nil
}

// objectURL returns the public URL for a stored object, preferring the
// configured CDN base URL over the raw S3 endpoint.
func (s *AssetStorage) objectURL(key string) string {
	if s.baseURL != "" {
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

// ValidateFileSize rejects uploads above the product image cap.
func ValidateFileSize(size int64) error {
	if size > MaxImageSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", int64(MaxImageSize))
	}
	return nil
}

func validateContentType(contentType string) error {
	for _, allowed := range AllowedImageTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}
