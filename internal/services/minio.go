package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"bazario_back_end/internal/config"
)

// Uploader pousse un binaire vers le stockage d'objets et rend une URL
// durable. Remove est best-effort partout où il est appelé.
type Uploader interface {
	Upload(ctx context.Context, folder string, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, objectURL string) error
}

// MinioUploader implémente Uploader sur MinIO, un dossier par type d'asset
// (shop_avatars, product_images, ...).
type MinioUploader struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

func NewMinioUploader(cfg *config.Config) (*MinioUploader, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connexion MinIO: %w", err)
	}
	log.Println("✅ Connecté à MinIO :", cfg.MinioEndpoint)
	return &MinioUploader{
		client:   client,
		endpoint: cfg.MinioEndpoint,
		bucket:   cfg.MinioBucket,
		useSSL:   cfg.MinioUseSSL,
	}, nil
}

// Upload pousse le fichier sous folder/<uuid><ext> et retourne l'URL publique.
func (u *MinioUploader) Upload(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := folder + "/" + uuid.NewString() + path.Ext(file.Filename)

	_, err = u.client.PutObject(ctx, u.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if u.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.endpoint, u.bucket, objectName), nil
}

// Remove supprime l'objet désigné par une URL rendue par Upload. Les URLs
// étrangères au bucket sont ignorées sans erreur.
func (u *MinioUploader) Remove(ctx context.Context, objectURL string) error {
	marker := "/" + u.bucket + "/"
	idx := strings.Index(objectURL, marker)
	if idx < 0 {
		return nil
	}
	objectName := objectURL[idx+len(marker):]
	return u.client.RemoveObject(ctx, u.bucket, objectName, minio.RemoveObjectOptions{})
}
