package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client *s3.Client
	s3Bucket string
)

// InitS3 wires the S3 client when a bucket is configured. Without one,
// uploaded meal images are analyzed but not archived.
func InitS3() {
	s3Bucket = os.Getenv("S3_BUCKET")
	if s3Bucket == "" {
		log.Printf("S3_BUCKET not set: meal image archiving disabled")
		return
	}

	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Printf("unable to load AWS config for S3, archiving disabled: %v", err)
		s3Bucket = ""
		return
	}
	s3Client = s3.NewFromConfig(cfg)
}

func S3Enabled() bool { return s3Bucket != "" && s3Client != nil }

// UploadMealImage archives the raw image bytes under meal-images/ and
// returns the public URL (CloudFront when configured).
func UploadMealImage(contentType string, data []byte) (string, error) {
	if !S3Enabled() {
		return "", fmt.Errorf("s3 archiving disabled")
	}

	ext := extensionFor(contentType)
	key := fmt.Sprintf("meal-images/%d%s", time.Now().UnixNano(), ext)

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	if cfURL := os.Getenv("CLOUDFRONT_URL"); cfURL != "" {
		return fmt.Sprintf("%s/%s", cfURL, key), nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s3Bucket, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	// fallback: use the subtype
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}
