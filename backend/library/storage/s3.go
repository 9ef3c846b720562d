package storage

import (
	"context"
	"fmt"
	"time"

	"filedrop/backend/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Gateway implements Gateway against AWS S3 or any S3-compatible backend
// (R2, minio) via a custom endpoint.
type S3Gateway struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
}

// InitS3Gateway builds the gateway from the common S3 settings and installs
// it as the active one. A missing bucket is a configuration error: the
// service starts, but every storage-dependent request fails with it.
func InitS3Gateway(ctx context.Context) error {
	if common.S3Bucket == "" {
		common.SysLog("S3_BUCKET not set, object storage is disabled")
		return ErrNotConfigured
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(common.S3Region),
	}
	if common.S3AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(common.S3AccessKeyID, common.S3SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}

	var client *s3.Client
	if common.S3Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(common.S3Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	SetGateway(&S3Gateway{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        common.S3Bucket,
	})
	common.SysLog("object storage gateway initialized, bucket: " + common.S3Bucket)
	return nil
}

func (g *S3Gateway) PresignUpload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := g.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign upload for %s: %w", key, err)
	}
	return req.URL, nil
}

func (g *S3Gateway) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := g.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign download for %s: %w", key, err)
	}
	return req.URL, nil
}

func (g *S3Gateway) DeleteObject(ctx context.Context, key string) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
