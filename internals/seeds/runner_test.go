package seeds

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zakatconnect_backend/internals/databases/dbtest"
	mosqueAdminModel "zakatconnect_backend/internals/features/mosques/mosque_admins/model"
	mosqueModel "zakatconnect_backend/internals/features/mosques/mosques/model"
	userModel "zakatconnect_backend/internals/features/users/user/model"
	productTypeModel "zakatconnect_backend/internals/features/zakat/product_types/model"
)

func TestRunAllSeeds_Idempotent(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	require.NoError(t, RunAllSeeds(ctx, db, "data", nil))
	require.NoError(t, RunAllSeeds(ctx, db, "data", nil))

	var mosques, users, links, products int64
	require.NoError(t, db.Model(&mosqueModel.MosqueModel{}).Count(&mosques).Error)
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	require.NoError(t, db.Model(&mosqueAdminModel.MosqueAdminModel{}).Count(&links).Error)
	require.NoError(t, db.Model(&productTypeModel.ProductTypeModel{}).Count(&products).Error)
	assert.EqualValues(t, 2, mosques)
	assert.EqualValues(t, 3, users)
	assert.EqualValues(t, 2, links)
	assert.EqualValues(t, 4, products)

	var rice productTypeModel.ProductTypeModel
	require.NoError(t, db.Where("name = ?", "Beras").First(&rice).Error)
	assert.True(t, rice.Price.Equal(decimal.NewFromInt(15000)))
}

func TestRunAllSeeds_MissingDir(t *testing.T) {
	db := dbtest.New(t)
	assert.Error(t, RunAllSeeds(context.Background(), db, "tidak-ada", nil))
}
