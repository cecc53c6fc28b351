package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"Sehat-Backend/internal/utils"
)

var (
	AllowImage  = []string{"image/jpeg", "image/jpg", "image/png"}
	AllowPDF    = []string{"application/pdf"}
	AllowReport = append(append([]string{}, AllowPDF...), AllowImage...)

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrEmptyFile          = errors.New("file is empty")
)

var extensionByType = map[string]string{
	"application/pdf": "pdf",
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/png":       "png",
}

type (
	AwsS3 interface {
		// UploadFile stores file under <folder>/<fileName>.<ext> and returns the object key.
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	// objectAPI is the subset of the S3 client used here.
	objectAPI interface {
		PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
		DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	}

	S3Config struct {
		Bucket    string
		Region    string
		Endpoint  string
		AccessKey string
		SecretKey string
	}

	awsS3 struct {
		client     objectAPI
		bucket     string
		publicBase string
	}
)

func S3ConfigFromEnv() S3Config {
	return S3Config{
		Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		Region:    utils.GetConfigDefault("AWS_S3_REGION", "ap-south-1"),
		Endpoint:  utils.GetConfig("AWS_S3_ENDPOINT"),
		AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
		SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
	}
}

func NewAwsS3(ctx context.Context, cfg S3Config) (AwsS3, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newAwsS3(client, cfg), nil
}

func newAwsS3(client objectAPI, cfg S3Config) *awsS3 {
	publicBase := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		publicBase = fmt.Sprintf("%s/%s/", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	}

	return &awsS3{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: publicBase,
	}
}

func (s *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	if file == nil || file.Size == 0 {
		return "", ErrEmptyFile
	}

	contentType := ContentType(file)
	if len(allowedTypes) > 0 && !slices.Contains(allowedTypes, contentType) {
		return "", ErrFileTypeNotAllowed
	}

	objectKey := fileName
	if ext := Extension(file); ext != "" {
		objectKey += "." + ext
	}
	if folder != "" {
		objectKey = folder + "/" + objectKey
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          src,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", objectKey, err)
	}

	return objectKey, nil
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", objectKey, err)
	}
	return nil
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return s.publicBase + objectKey
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, s.publicBase) {
		return ""
	}
	return strings.TrimPrefix(link, s.publicBase)
}

// ContentType returns the declared MIME type of the part without parameters.
func ContentType(file *multipart.FileHeader) string {
	mediaType, _, err := mime.ParseMediaType(file.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}

// Extension takes the extension from the file name, falling back to the MIME type.
func Extension(file *multipart.FileHeader) string {
	if ext := strings.TrimPrefix(filepath.Ext(file.Filename), "."); ext != "" {
		return strings.ToLower(ext)
	}
	return extensionByType[ContentType(file)]
}
