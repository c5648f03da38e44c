// utils/storage.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	storageClient *s3.Client
	storageBucket string
	cdnBaseURL    string
)

// InitObjectStorage configures the R2/S3 client used for profile pictures.
// Returns false without error when the credentials are absent, so local
// setups can run without object storage.
func InitObjectStorage() (bool, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	storageBucket = os.Getenv("R2_BUCKET_NAME")
	if accountID == "" || accessKeyID == "" || accessKeySecret == "" || storageBucket == "" {
		return false, nil
	}

	cdnBaseURL = os.Getenv("CDN_BASE_URL")
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return false, fmt.Errorf("failed to load object storage config: %w", err)
	}

	storageClient = s3.NewFromConfig(cfg)
	return true, nil
}

// ObjectStorageEnabled reports whether InitObjectStorage found credentials.
func ObjectStorageEnabled() bool {
	return storageClient != nil
}

// UploadObject uploads a multipart file under the given key and returns the
// public CDN URL.
func UploadObject(fileHeader *multipart.FileHeader, key string) (string, error) {
	if storageClient == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = storageClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(storageBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s", cdnBaseURL, key), nil
}
