package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/pantry-service/internal/mocks"
	"github.com/guttosm/pantry-service/internal/report"
	"github.com/guttosm/pantry-service/internal/service"
)

func TestReportService_ShoppingListPDF(t *testing.T) {
	pantries := new(mocks.MockPantryService)
	pantries.On("ShoppingList", mock.Anything, household).Return([]string{"Brot", "Eier (3)"}, nil)
	svc := service.NewReportService(pantries, nil)

	doc, err := svc.ShoppingListPDF(context.Background(), household, "Einkaufsliste")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))
	pantries.AssertExpectations(t)
}

func TestReportService_ExportShoppingList(t *testing.T) {
	t.Run("writes to the sink", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		pantries := new(mocks.MockPantryService)
		pantries.On("ShoppingList", mock.Anything, household).Return([]string{"Brot"}, nil)
		svc := service.NewReportService(pantries, report.NewFileSinkFs(fs, "/reports"))

		location, err := svc.ExportShoppingList(context.Background(), household, "Familie Muster", "Shopping list")
		require.NoError(t, err)
		assert.Contains(t, location, "/reports/shopping-list-familie-muster-")

		data, err := afero.ReadFile(fs, location)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})

	t.Run("no sink", func(t *testing.T) {
		svc := service.NewReportService(new(mocks.MockPantryService), nil)
		_, err := svc.ExportShoppingList(context.Background(), household, "Familie", "Shopping list")
		assert.ErrorIs(t, err, service.ErrReportSinkNotConfigured)
	})

	t.Run("pantry error", func(t *testing.T) {
		boom := errors.New("store unavailable")
		pantries := new(mocks.MockPantryService)
		pantries.On("ShoppingList", mock.Anything, household).Return(nil, boom)
		svc := service.NewReportService(pantries, report.NewFileSinkFs(afero.NewMemMapFs(), "/reports"))

		_, err := svc.ExportShoppingList(context.Background(), household, "Familie", "Shopping list")
		assert.ErrorIs(t, err, boom)
	})
}
