package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/shopworks/storefront-backend/internal/catalog"
	"github.com/shopworks/storefront-backend/pkg/config"
	pkgerrors "github.com/shopworks/storefront-backend/pkg/errors"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// UploadResult reports where a product image landed.
type UploadResult struct {
	Filename string `json:"filename"`
	ImageURL string `json:"image_url"`
}

// Service stores product images on local disk and points the product row at
// the stored file.
type Service interface {
	UploadProductImage(ctx context.Context, productID uuid.UUID, originalName string, size int64, file io.Reader) (*UploadResult, error)
}

// ServiceParams bundles the dependencies required to build a media service.
type ServiceParams struct {
	Products *catalog.Repository
	Config   config.MediaConfig
}

type service struct {
	products *catalog.Repository
	cfg      config.MediaConfig
}

// NewService constructs a media service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if params.Config.UploadDir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	return &service{products: params.Products, cfg: params.Config}, nil
}

// UploadProductImage validates and stores the file as
// {productID}_original{ext} under the upload dir, then updates the product.
// The fixed name means a re-upload replaces the previous image.
func (s *service) UploadProductImage(ctx context.Context, productID uuid.UUID, originalName string, size int64, file io.Reader) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"unsupported image type, use png, jpg, jpeg or gif")
	}
	if size <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "uploaded file is empty")
	}
	if size > s.cfg.MaxUploadBytes() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("image exceeds the %dMB limit", s.cfg.MaxUploadMB))
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "prepare upload dir")
	}

	filename := fmt.Sprintf("%s_original%s", productID, ext)
	destPath := filepath.Join(s.cfg.UploadDir, filename)

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create image file")
	}
	defer dest.Close()

	written, err := io.Copy(dest, io.LimitReader(file, s.cfg.MaxUploadBytes()+1))
	if err != nil {
		os.Remove(destPath)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write image file")
	}
	if written > s.cfg.MaxUploadBytes() {
		os.Remove(destPath)
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("image exceeds the %dMB limit", s.cfg.MaxUploadMB))
	}

	affected, err := s.products.UpdateImageFile(ctx, productID, filename)
	if err != nil {
		os.Remove(destPath)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product image")
	}
	if affected == 0 {
		os.Remove(destPath)
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	return &UploadResult{
		Filename: filename,
		ImageURL: strings.TrimRight(s.cfg.PublicPath, "/") + "/" + filename,
	}, nil
}
