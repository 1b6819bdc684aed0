package services

import (
	"context"
	"fmt"
	"happycrafts_server/imageset"
	"happycrafts_server/structs"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/MonkyMars/gecho"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	s3Client *s3.Client
	s3Once   sync.Once
	s3Err    error
)

// StorageService stores product images in S3 and serves as both the
// uploader and the remover for the submission workflow.
type StorageService struct {
	logger *gecho.Logger
	config *structs.Config
	client *s3.Client
}

// Compile-time checks that StorageService satisfies the workflow contracts
var (
	_ imageset.Uploader = (*StorageService)(nil)
	_ imageset.Remover  = (*StorageService)(nil)
)

func NewStorageService(logger *gecho.Logger, cfg *structs.Config) (*StorageService, error) {
	client, err := getS3Client(cfg.Storage.Region)
	if err != nil {
		return nil, err
	}

	return &StorageService{
		logger: logger,
		config: cfg,
		client: client,
	}, nil
}

// getS3Client returns a singleton S3 client
func getS3Client(region string) (*s3.Client, error) {
	s3Once.Do(func() {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(region),
		)
		if err != nil {
			s3Err = fmt.Errorf("unable to load AWS SDK config: %w", err)
			return
		}
		s3Client = s3.NewFromConfig(awsCfg)
	})
	return s3Client, s3Err
}

// Upload stores a pending file under a fresh object key and returns its
// public URL. The key embeds a UUID so name collisions cannot occur.
func (ss *StorageService) Upload(ctx context.Context, file imageset.PendingFile) (string, error) {
	if ss.config.Storage.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ss.config.Storage.UploadTimeout)
		defer cancel()
	}

	body, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file %q: %w", file.Name, err)
	}
	defer body.Close()

	key := ss.objectKey(file.Name)

	_, err = ss.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(ss.config.Storage.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(file.ContentType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		ss.logger.Error("Failed to upload image",
			gecho.Field("key", key),
			gecho.Field("file", file.Name),
			gecho.Field("error", err),
		)
		return "", fmt.Errorf("failed to upload %q: %w", file.Name, err)
	}

	publicURL := ss.publicURL(key)
	ss.logger.Debug("Image uploaded",
		gecho.Field("key", key),
		gecho.Field("url", publicURL),
		gecho.Field("size", file.Size),
	)
	return publicURL, nil
}

// Remove deletes a previously uploaded object by its public URL
func (ss *StorageService) Remove(ctx context.Context, imageURL string) error {
	key, err := ss.keyFromURL(imageURL)
	if err != nil {
		return err
	}

	_, err = ss.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(ss.config.Storage.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}

	ss.logger.Debug("Image removed", gecho.Field("key", key))
	return nil
}

// objectKey builds a unique object key from the prefix and the original
// filename. Only the extension of the original name is kept.
func (ss *StorageService) objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	key := uuid.New().String() + ext
	if prefix := strings.Trim(ss.config.Storage.KeyPrefix, "/"); prefix != "" {
		return prefix + "/" + key
	}
	return key
}

// publicURL resolves the public URL for an object key
func (ss *StorageService) publicURL(key string) string {
	if base := strings.TrimRight(ss.config.Storage.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		ss.config.Storage.Bucket, ss.config.Storage.Region, key)
}

// keyFromURL extracts the object key from a public URL
func (ss *StorageService) keyFromURL(imageURL string) (string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid image URL %q: %w", imageURL, err)
	}

	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", fmt.Errorf("image URL %q has no object key", imageURL)
	}
	return key, nil
}
