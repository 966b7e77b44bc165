package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var AllowImage = []string{".jpg", ".jpeg", ".png", ".webp"}

var ErrFileTypeNotAllowed = errors.New("file type not allowed")

type (
	AwsS3 interface {
		UploadFile(filename string, file *multipart.FileHeader, dir string, allowedExt ...string) (string, error)
		GetPublicLinkKey(objectKey string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	region := os.Getenv("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY"),
			os.Getenv("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return &awsS3{bucket: os.Getenv("AWS_S3_BUCKET"), region: region}
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: os.Getenv("AWS_S3_BUCKET"),
		region: region,
	}
}

func (a *awsS3) UploadFile(filename string, file *multipart.FileHeader, dir string, allowedExt ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowedExt) > 0 {
		allowed := false
		for _, e := range allowedExt {
			if ext == e {
				allowed = true
				break
			}
		}
		if !allowed {
			return "", ErrFileTypeNotAllowed
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectKey := fmt.Sprintf("%s/%s", dir, filename)
	_, err = a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: &a.bucket,
		Key:    &objectKey,
		Body:   src,
	})
	if err != nil {
		return "", err
	}

	return objectKey, nil
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}
