package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fadistore/storefront/config"
	"github.com/fadistore/storefront/internal/domain"
	"github.com/fadistore/storefront/internal/dto"
	"github.com/fadistore/storefront/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products []domain.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1}
}

func (r *fakeProductRepo) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), r.products...), nil
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, errs.ErrNotFound
}

func (r *fakeProductRepo) AddProduct(ctx context.Context, data domain.Product) (int64, error) {
	data.ID = r.nextID
	r.nextID++
	r.products = append(r.products, data)
	return data.ID, nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, data domain.Product) error {
	for i, p := range r.products {
		if p.ID == data.ID {
			r.products[i] = data
			return nil
		}
	}
	return errs.ErrNotFound
}

func newProductService(t *testing.T) (ProductService, *fakeProductRepo) {
	t.Helper()
	repo := newFakeProductRepo()
	return CreateNewProductService(repo, t.TempDir(), nil), repo
}

func strPtr(s string) *string { return &s }

func TestAddProductRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t)

	created, err := svc.AddProduct(ctx, dto.ProductRequest{Name: "Lamp", Description: "A nice lamp"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", got.Name)
	assert.Equal(t, "A nice lamp", got.Description)
	assert.Nil(t, got.ImageFilename)
}

func TestAddProductValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t)

	_, err := svc.AddProduct(ctx, dto.ProductRequest{Name: "", Description: "desc"})
	assert.ErrorIs(t, err, errs.ErrClient)

	_, err = svc.AddProduct(ctx, dto.ProductRequest{Name: "Lamp", Description: "   "})
	assert.ErrorIs(t, err, errs.ErrClient)
}

func TestUpdateProductPreservesImage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t)

	created, err := svc.AddProduct(ctx, dto.ProductRequest{
		Name:          "Lamp",
		Description:   "A nice lamp",
		ImageFilename: strPtr("lamp.png"),
	})
	require.NoError(t, err)

	// No new image in the payload: the stored reference must survive.
	err = svc.UpdateProduct(ctx, dto.ProductRequest{ID: created.ID, Name: "Lamp", Description: "A nicer lamp"})
	require.NoError(t, err)

	got, err := svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ImageFilename)
	assert.Equal(t, "lamp.png", *got.ImageFilename)

	// A new image replaces it.
	err = svc.UpdateProduct(ctx, dto.ProductRequest{
		ID:            created.ID,
		Name:          "Lamp",
		Description:   "A nicer lamp",
		ImageFilename: strPtr("lamp2.png"),
	})
	require.NoError(t, err)

	got, err = svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ImageFilename)
	assert.Equal(t, "lamp2.png", *got.ImageFilename)
}

func TestUpdateMissingProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t)

	err := svc.UpdateProduct(ctx, dto.ProductRequest{ID: 42, Name: "Lamp", Description: "desc"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t)

	products, err := svc.GetProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, products)

	created, err := svc.AddProduct(ctx, dto.ProductRequest{Name: "Lamp", Description: "A nice lamp"})
	require.NoError(t, err)

	products, err = svc.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Lamp", products[0].Name)
	assert.Nil(t, products[0].ImageFilename)

	err = svc.UpdateProduct(ctx, dto.ProductRequest{
		ID:            created.ID,
		Name:          "Lamp",
		Description:   "A nicer lamp",
		ImageFilename: strPtr("lamp.png"),
	})
	require.NoError(t, err)

	got, err := svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A nicer lamp", got.Description)
	require.NotNil(t, got.ImageFilename)
	assert.Equal(t, "lamp.png", *got.ImageFilename)
}

func TestStoreImage(t *testing.T) {
	repo := newFakeProductRepo()
	uploadDir := t.TempDir()
	svc := CreateNewProductService(repo, uploadDir, nil)

	content := []byte("png-bytes")
	filename, err := svc.StoreImage(bytes.NewReader(content), "lamp.png", int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, "lamp.png", filename)

	stored, err := os.ReadFile(filepath.Join(uploadDir, "lamp.png"))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestStoreImageSanitizesTraversal(t *testing.T) {
	repo := newFakeProductRepo()
	uploadDir := t.TempDir()
	svc := CreateNewProductService(repo, uploadDir, nil)

	filename, err := svc.StoreImage(strings.NewReader("x"), "../../escape.png", 1)
	require.NoError(t, err)
	assert.Equal(t, "escape.png", filename)

	_, err = os.Stat(filepath.Join(uploadDir, "escape.png"))
	assert.NoError(t, err)
}

func TestStoreImageRejectsOversizedPayload(t *testing.T) {
	repo := newFakeProductRepo()
	uploadDir := t.TempDir()
	svc := CreateNewProductService(repo, uploadDir, nil)

	_, err := svc.StoreImage(strings.NewReader("x"), "big.png", config.MaxImageSize+1)
	assert.ErrorIs(t, err, errs.ErrFileSizeExceedingLimit)

	// Nothing may be left behind in the upload directory.
	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreImageRejectsUndeclaredOversizedPayload(t *testing.T) {
	repo := newFakeProductRepo()
	uploadDir := t.TempDir()
	svc := CreateNewProductService(repo, uploadDir, nil)

	// Declared size lies; the actual stream exceeds the ceiling.
	oversized := bytes.NewReader(make([]byte, config.MaxImageSize+1))
	_, err := svc.StoreImage(oversized, "big.png", 1)
	assert.ErrorIs(t, err, errs.ErrFileSizeExceedingLimit)

	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreImageOverwritesOnCollision(t *testing.T) {
	repo := newFakeProductRepo()
	uploadDir := t.TempDir()
	svc := CreateNewProductService(repo, uploadDir, nil)

	_, err := svc.StoreImage(strings.NewReader("first"), "lamp.png", 5)
	require.NoError(t, err)

	_, err = svc.StoreImage(strings.NewReader("second"), "lamp.png", 6)
	require.NoError(t, err)

	stored, err := os.ReadFile(filepath.Join(uploadDir, "lamp.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(stored))
}

func TestStoreImageRejectsUnusableFilename(t *testing.T) {
	repo := newFakeProductRepo()
	svc := CreateNewProductService(repo, t.TempDir(), nil)

	_, err := svc.StoreImage(strings.NewReader("x"), "...", 1)
	assert.ErrorIs(t, err, errs.ErrInvalidFilename)
}
