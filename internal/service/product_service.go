package service

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadistore/storefront/config"
	"github.com/fadistore/storefront/internal/domain"
	"github.com/fadistore/storefront/internal/dto"
	"github.com/fadistore/storefront/internal/repository"
	"github.com/fadistore/storefront/pkg/errs"
	"github.com/fadistore/storefront/pkg/utils"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

type ProductService interface {
	GetProducts(ctx context.Context) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id int64) (data domain.Product, err error)
	AddProduct(ctx context.Context, payload dto.ProductRequest) (product domain.Product, err error)
	UpdateProduct(ctx context.Context, payload dto.ProductRequest) (err error)
	StoreImage(src io.Reader, originalFilename string, size int64) (filename string, err error)
}

type ProductServiceImpl struct {
	repo          repository.ProductRepository
	uploadDir     string
	kafkaProducer *kafka.Conn
}

func CreateNewProductService(repo repository.ProductRepository, uploadDir string, kafkaProducer *kafka.Conn) ProductService {
	return &ProductServiceImpl{repo: repo, uploadDir: uploadDir, kafkaProducer: kafkaProducer}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context) (data []domain.Product, err error) {
	return s.repo.GetProducts(ctx)
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id int64) (data domain.Product, err error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, payload dto.ProductRequest) (product domain.Product, err error) {
	name := strings.TrimSpace(payload.Name)
	description := strings.TrimSpace(payload.Description)
	if name == "" || description == "" {
		return product, errs.ErrClient
	}

	product = domain.Product{
		Name:          name,
		Description:   description,
		ImageFilename: payload.ImageFilename,
	}

	id, err := s.repo.AddProduct(ctx, product)
	if err != nil {
		return product, err
	}
	product.ID = id

	s.publishEvent("product_created", dto.ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		ImageFilename: product.ImageFilename,
	})

	return product, nil
}

// UpdateProduct overwrites name and description. The image reference is only
// replaced when the payload carries a new one; last writer wins on concurrent
// edits of the same product.
func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, payload dto.ProductRequest) (err error) {
	existing, err := s.repo.GetProductByID(ctx, payload.ID)
	if err != nil {
		return
	}

	name := strings.TrimSpace(payload.Name)
	description := strings.TrimSpace(payload.Description)
	if name == "" || description == "" {
		return errs.ErrClient
	}

	imageFilename := existing.ImageFilename
	if payload.ImageFilename != nil {
		imageFilename = payload.ImageFilename
	}

	updated := domain.Product{
		ID:            existing.ID,
		Name:          name,
		Description:   description,
		ImageFilename: imageFilename,
		CreatedAt:     existing.CreatedAt,
	}

	if err := s.repo.UpdateProduct(ctx, updated); err != nil {
		return err
	}

	s.publishEvent("product_updated", dto.ProductResponse{
		ID:            updated.ID,
		Name:          updated.Name,
		Description:   updated.Description,
		ImageFilename: updated.ImageFilename,
	})

	return nil
}

// StoreImage writes an uploaded product image into the upload directory under
// its sanitized name and returns that name. A name that sanitizes to an
// identical existing file silently overwrites it. Payloads over the ceiling
// are rejected before anything is written.
func (s *ProductServiceImpl) StoreImage(src io.Reader, originalFilename string, size int64) (filename string, err error) {
	filename = utils.SecureFilename(originalFilename)
	if filename == "" {
		return "", errs.ErrInvalidFilename
	}

	if size > config.MaxImageSize {
		return "", errs.ErrFileSizeExceedingLimit
	}

	path := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Str("component", "StoreImage").Msg("")
		return "", errs.ErrInternalServer
	}
	defer dst.Close()

	// The declared size is not trusted: stop one byte past the ceiling.
	written, err := io.Copy(dst, io.LimitReader(src, config.MaxImageSize+1))
	if err != nil {
		log.Error().Err(err).Str("component", "StoreImage").Msg("")
		os.Remove(path)
		return "", errs.ErrInternalServer
	}
	if written > config.MaxImageSize {
		os.Remove(path)
		return "", errs.ErrFileSizeExceedingLimit
	}

	return filename, nil
}

// publishEvent emits a product event to Kafka when a producer is configured.
// Event delivery is best effort and never fails the originating request.
func (s *ProductServiceImpl) publishEvent(eventType string, data dto.ProductResponse) {
	if s.kafkaProducer == nil {
		return
	}

	kafkaMsg := dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Error().Err(err).Str("component", "publishEvent").Msg("")
		return
	}

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		_, err = s.kafkaProducer.WriteMessages(kafka.Message{Value: jsonMsg})
		if err == nil {
			return
		}
		log.Error().Err(err).Str("component", "publishEvent").Msgf("failed to write Kafka message (attempt %d/%d)", i+1, maxRetries)
		time.Sleep(time.Second * time.Duration(i+1))
	}
}
