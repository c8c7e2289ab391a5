// Package s3 implementa el puerto BlobStore sobre Amazon S3 o un servicio
// compatible (MinIO en desarrollo, vía endpoint propio y path-style).
package s3

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hylatrack/leads-api/internal/domain/repository"
	"github.com/hylatrack/leads-api/pkg/config"
)

var _ repository.BlobStore = (*BlobStore)(nil)

// BlobStore almacena las imágenes de leads en un bucket S3.
type BlobStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewBlobStore construye el cliente S3 con la configuración de la app.
// Con AccessKey/SecretKey usa credenciales estáticas (MinIO o llaves explícitas);
// si no, cae en la cadena de credenciales por defecto del SDK (IAM, env vars).
func NewBlobStore(ctx context.Context, cfg config.StorageConfig) (*BlobStore, error) {
	var awsCfg aws.Config
	var err error
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey, cfg.SecretKey, "",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	}
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &BlobStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// Upload sube el binario al bucket bajo la ruta dada.
func (b *BlobStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("subir objeto a s3: %w", err)
	}
	return nil
}

// SignedURL genera una URL temporal de lectura con la vigencia dada.
func (b *BlobStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	req, err := b.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(path),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("generar url firmada: %w", err)
	}
	return req.URL, nil
}
