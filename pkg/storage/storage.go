package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
	"github.com/campusconnect/campusconnect-api/pkg/metrics"
	"go.uber.org/zap"
)

// Client is an S3-compatible object storage client used for profile pictures
type Client struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
}

// NewClient creates a new object storage client against any S3-compatible
// endpoint (AWS, MinIO, DigitalOcean Spaces)
func NewClient(accessKeyID, secretAccessKey, bucketName, endpoint, region string) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	if region == "" {
		region = "us-east-1"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials: credentials.NewStaticCredentialsProvider(
			accessKeyID,
			secretAccessKey,
			"", // session token not needed
		),
	})

	logger.Info("Object storage client initialized",
		zap.String("bucket", bucketName),
		zap.String("endpoint", endpoint),
		zap.String("region", region),
	)

	return &Client{
		s3Client:   s3Client,
		bucketName: bucketName,
		endpoint:   endpoint,
	}, nil
}

// UploadImage uploads a base64-encoded image (raw or data URI) and returns
// its public URL
func (c *Client) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	start := time.Now()
	operation := "uploadImage"

	imageBytes, err := decodeImageData(imageData)
	if err != nil {
		metrics.RecordDBOperation(operation, "error", metrics.MeasureDuration(start))
		return "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	_, err = c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageBytes),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.RecordDBOperation(operation, "error", duration)
		logger.Error("Failed to upload image",
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	metrics.RecordDBOperation(operation, "success", duration)
	logger.Info("Image uploaded",
		zap.String("key", key),
		zap.Int("size_bytes", len(imageBytes)),
	)

	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucketName, key), nil
}

// ValidateImageType validates the image content type
func (c *Client) ValidateImageType(contentType string) error {
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}

	if !validTypes[strings.ToLower(contentType)] {
		return fmt.Errorf("invalid file type: %s. Allowed types: jpeg, jpg, png, webp", contentType)
	}

	return nil
}

// ValidateImageSize validates the decoded image size (max 10MB)
func (c *Client) ValidateImageSize(imageData string) error {
	const maxSize = 10 * 1024 * 1024

	imageBytes, err := decodeImageData(imageData)
	if err != nil {
		return fmt.Errorf("failed to decode image for size validation: %w", err)
	}

	if len(imageBytes) > maxSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", len(imageBytes), maxSize)
	}

	return nil
}

// decodeImageData handles both raw base64 and data URI formats
// (data:image/png;base64,...)
func decodeImageData(imageData string) ([]byte, error) {
	if strings.HasPrefix(imageData, "data:") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data URI format")
		}
		return base64.StdEncoding.DecodeString(parts[1])
	}
	return base64.StdEncoding.DecodeString(imageData)
}
