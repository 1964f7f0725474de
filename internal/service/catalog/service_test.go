package catalog_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/domain"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/service/catalog"
	"github.com/Michelly-Oliveira/Challenge-Backend-Level-4/internal/storage/memory"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

func TestCatalog_CreateProduct(t *testing.T) {
	repo := memory.NewProductRepository()
	svc := catalog.NewService(repo, loggerForTests())

	created, err := svc.CreateProduct("Keyboard", 500, 10)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, int64(500), created.PriceMinor)
	require.Equal(t, int32(10), created.Qty)

	stored, err := repo.FindByName("Keyboard")
	require.NoError(t, err)
	require.Equal(t, created.ID, stored.ID)
}

func TestCatalog_CreateProduct_DuplicateName(t *testing.T) {
	svc := catalog.NewService(memory.NewProductRepository(), loggerForTests())

	_, err := svc.CreateProduct("Keyboard", 500, 10)
	require.NoError(t, err)

	_, err = svc.CreateProduct("Keyboard", 700, 5)
	require.ErrorIs(t, err, domain.ErrProductAlreadyExists)
}

func TestCatalog_CreateProduct_Invalid(t *testing.T) {
	svc := catalog.NewService(memory.NewProductRepository(), loggerForTests())

	_, err := svc.CreateProduct("", 500, 10)
	require.ErrorIs(t, err, domain.ErrProductNameRequired)

	_, err = svc.CreateProduct("Keyboard", -1, 10)
	require.ErrorIs(t, err, domain.ErrItemPriceInvalid)

	_, err = svc.CreateProduct("Keyboard", 500, -1)
	require.ErrorIs(t, err, domain.ErrProductQtyNegative)
}

func TestCatalog_ListProducts(t *testing.T) {
	svc := catalog.NewService(memory.NewProductRepository(), loggerForTests())

	_, err := svc.CreateProduct("Keyboard", 500, 10)
	require.NoError(t, err)
	_, err = svc.CreateProduct("Mouse", 300, 5)
	require.NoError(t, err)

	products, err := svc.ListProducts(0)
	require.NoError(t, err)
	require.Len(t, products, 2)

	limited, err := svc.ListProducts(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}
