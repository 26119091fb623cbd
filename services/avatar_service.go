package services

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AvatarService issues presigned S3 URLs for the avatar images referenced
// by presence entries (avatarRef holds the object key).
type AvatarService struct {
	Client *s3.Client
	Bucket string
}

// NewAvatarService initializes the S3 client for avatar storage
func NewAvatarService(region, bucket string) *AvatarService {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config for S3: %v", err)
	}
	return &AvatarService{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
	}
}

// GenerateUploadURL returns a presigned PUT URL and the object key the
// caller should store as avatarRef
func (as *AvatarService) GenerateUploadURL(ctx context.Context, fileName, fileType string) (string, string, error) {
	key := "avatars/" + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(as.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(as.Client)
	presigned, err := presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presigned.URL, key, nil
}

// GenerateReadURL returns a presigned GET URL for an avatar key
func (as *AvatarService) GenerateReadURL(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(as.Bucket),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(as.Client)
	presigned, err := presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}
