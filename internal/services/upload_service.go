package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"wellen-backend/internal/config"
)

// UploadService stores base64-encoded evidence photos in the R2 bucket and
// returns their public URL.
type UploadService struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewUploadService(ctx context.Context, cfg *config.Config) (*UploadService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2.AccessKey,
			cfg.R2.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.R2.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("configure R2 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.R2.Endpoint)
	})

	return &UploadService{
		client:  client,
		bucket:  cfg.R2.Bucket,
		baseURL: strings.TrimRight(cfg.R2.PublicBaseURL, "/"),
	}, nil
}

// Upload decodes the image and stores it under folder/<uuid>.<ext>.
func (s *UploadService) Upload(ctx context.Context, image, folder string) (string, error) {
	data, contentType, err := decodeImage(image)
	if err != nil {
		return "", err
	}
	if folder == "" {
		folder = "uploads"
	}

	key := fmt.Sprintf("%s/%s.%s", strings.Trim(folder, "/"), uuid.NewString(), extFor(contentType))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("[R2 Upload] stored %s (%d bytes)", key, len(data))
	return s.baseURL + "/" + key, nil
}

// decodeImage accepts raw base64 or a data URL and sniffs the content type.
func decodeImage(image string) ([]byte, string, error) {
	contentType := "image/jpeg"
	if strings.HasPrefix(image, "data:") {
		parts := strings.SplitN(image, ",", 2)
		if len(parts) != 2 {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		if i := strings.Index(meta, ";"); i >= 0 {
			meta = meta[:i]
		}
		if meta != "" {
			contentType = meta
		}
		image = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image")
	}
	return data, contentType, nil
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}
