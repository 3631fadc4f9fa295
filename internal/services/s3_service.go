package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"phonebook/config"
	"phonebook/internal/utils"
)

type S3Service struct {
	s3Client s3iface.S3API
	config   *config.S3Config
}

func NewS3Service(config *config.S3Config) (*S3Service, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	if config.ServiceUrl != "" {
		awsConfig.Endpoint = aws.String(config.ServiceUrl)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating S3 session: %w", err)
	}

	return NewS3ServiceWithClient(s3.New(sess), config), nil
}

func NewS3ServiceWithClient(client s3iface.S3API, config *config.S3Config) *S3Service {
	return &S3Service{s3Client: client, config: config}
}

func (s *S3Service) UploadBytes(ctx context.Context, data []byte, fileName string, contentType string) (string, error) {
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	utils.LogInfo("Uploading %s to S3 bucket %s", fileName, s.config.BucketName)
	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return "", fmt.Errorf("error uploading to S3: %w", err)
	}

	fileUrl := fmt.Sprintf("%s/%s", s.config.BucketUrl, fileName)
	utils.LogInfo("Upload finished: %s", fileUrl)
	return fileUrl, nil
}
