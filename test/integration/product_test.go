package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"hwreview_backend/internal/models"
	"hwreview_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateWithSpecsAndLinks(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "catalogeditor", "catalogeditor@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	category := helpers.CreateTestCategory(t, tx, "GPUs")

	body := map[string]interface{}{
		"brand":       "Nvidia",
		"model":       "RTX 5080",
		"category_id": category.ID,
		"price":       1199.0,
		"currency":    "USD",
		"specifications": []map[string]interface{}{
			{"name": "VRAM", "value": "16", "type": "number", "unit": "GB"},
			{"name": "TDP", "value": "320", "type": "number", "unit": "W"},
		},
		"affiliate_links": []map[string]interface{}{
			{"merchant_name": "Amazon", "url": "https://example.com/rtx5080"},
		},
	}
	res, resBody := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/products", editorToken, body)
	require.Equal(t, http.StatusCreated, res.Code, resBody)

	var envelope struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(resBody), &envelope))
	assert.Equal(t, "nvidia-rtx-5080", envelope.Data.Slug)

	// Initial price opens the price history.
	var history []models.PriceHistory
	require.NoError(t, tx.Where("product_id = ?", envelope.Data.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, 1199.0, history[0].Price)

	var specCount int64
	require.NoError(t, tx.Model(&models.ProductSpecification{}).
		Where("product_id = ?", envelope.Data.ID).Count(&specCount).Error)
	assert.EqualValues(t, 2, specCount)
}

func TestPriceHistoryIsAppendOnly(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "priceadmin", "priceadmin@example.com", "Str0ngPassw0rd!", models.UserRoleAdmin)
	product := helpers.CreateTestProduct(t, tx, "AMD", "RX 9700 XT", nil)

	for _, price := range []float64{649, 599, 579} {
		res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/products/"+product.Slug+"/prices", adminToken,
			map[string]interface{}{"price": price, "currency": "USD"})
		require.Equal(t, http.StatusOK, res.Code, body)
	}

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/products/"+product.Slug+"/price-history", "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var envelope struct {
		Data []models.PriceHistory `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Len(t, envelope.Data, 3)

	// The product itself carries the latest recorded price.
	var updated models.Product
	require.NoError(t, tx.First(&updated, "id = ?", product.ID).Error)
	require.NotNil(t, updated.Price)
	assert.Equal(t, 579.0, *updated.Price)
}

func TestProductAverageRatingFromApprovedReviews(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	product := helpers.CreateTestProduct(t, tx, "Intel", "Core Ultra 9", nil)

	reviewer1 := &models.User{Username: "rater1", Email: "rater1@example.com", PasswordHash: "Str0ngPassw0rd!"}
	reviewer2 := &models.User{Username: "rater2", Email: "rater2@example.com", PasswordHash: "Str0ngPassw0rd!"}
	reviewer3 := &models.User{Username: "rater3", Email: "rater3@example.com", PasswordHash: "Str0ngPassw0rd!"}
	helpers.CreateUser(t, tx, reviewer1)
	helpers.CreateUser(t, tx, reviewer2)
	helpers.CreateUser(t, tx, reviewer3)

	helpers.CreateTestReview(t, tx, product.ID, reviewer1.ID, 5, models.ModerationStatusApproved)
	helpers.CreateTestReview(t, tx, product.ID, reviewer2.ID, 3, models.ModerationStatusApproved)
	// Pending reviews must not count.
	helpers.CreateTestReview(t, tx, product.ID, reviewer3.ID, 1, models.ModerationStatusPending)

	res, body := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/products/"+product.Slug, "", nil)
	require.Equal(t, http.StatusOK, res.Code, body)

	var envelope struct {
		Data struct {
			AverageRating *float64 `json:"average_rating"`
			ReviewCount   int64    `json:"review_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	require.NotNil(t, envelope.Data.AverageRating)
	assert.InDelta(t, 4.0, *envelope.Data.AverageRating, 0.001)
	assert.EqualValues(t, 2, envelope.Data.ReviewCount)
}

func TestFavoriteUniquePerUser(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "collector", "collector@example.com", "Str0ngPassw0rd!", models.UserRoleMember)
	product := helpers.CreateTestProduct(t, tx, "Corsair", "K100", nil)

	body := map[string]interface{}{"product_id": product.ID}

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/favorites", token, body)
	assert.Equal(t, http.StatusCreated, res.Code)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/favorites", token, body)
	assert.Equal(t, http.StatusConflict, res.Code)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/favorites/"+product.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/favorites/"+product.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestProductUpdateReplacesSpecsExactly(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "specseditor", "specseditor@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	category := helpers.CreateTestCategory(t, tx, "CPUs")

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/products", editorToken, map[string]interface{}{
		"brand":       "AMD",
		"model":       "Ryzen 9 9950X",
		"category_id": category.ID,
		"specifications": []map[string]interface{}{
			{"name": "Cores", "value": "16", "type": "number"},
			{"name": "TDP", "value": "170", "type": "number", "unit": "W"},
		},
	})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var created struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	productID := created.Data.ID

	specNames := func() []string {
		var specs []models.ProductSpecification
		require.NoError(t, tx.Where("product_id = ?", productID).Order("name").Find(&specs).Error)
		names := make([]string, 0, len(specs))
		for _, spec := range specs {
			names = append(names, spec.Name)
		}
		return names
	}
	require.Equal(t, []string{"Cores", "TDP"}, specNames())

	// A non-empty list replaces the stored set wholesale.
	res, body = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/products/"+productID, editorToken, map[string]interface{}{
		"specifications": []map[string]interface{}{
			{"name": "Boost Clock", "value": "5.7", "type": "number", "unit": "GHz"},
		},
	})
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Equal(t, []string{"Boost Clock"}, specNames())

	// Leaving the list out changes nothing.
	res, body = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/products/"+productID, editorToken, map[string]interface{}{
		"brand": "AMD",
	})
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Equal(t, []string{"Boost Clock"}, specNames())

	// An explicit empty list clears every spec.
	res, body = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/products/"+productID, editorToken, map[string]interface{}{
		"specifications": []map[string]interface{}{},
	})
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.Empty(t, specNames())
}

func TestProductMultipartUpdateBareSpecsFieldClears(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	editorToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "formeditor", "formeditor@example.com", "Str0ngPassw0rd!", models.UserRoleEditor)
	category := helpers.CreateTestCategory(t, tx, "Motherboards")

	res, body := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/products", editorToken, map[string]interface{}{
		"brand":       "ASUS",
		"model":       "ROG Strix X870E",
		"category_id": category.ID,
		"specifications": []map[string]interface{}{
			{"name": "Socket", "value": "AM5"},
		},
	})
	require.Equal(t, http.StatusCreated, res.Code, body)

	var created struct {
		Data models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	productID := created.Data.ID

	specCount := func() int64 {
		var count int64
		require.NoError(t, tx.Model(&models.ProductSpecification{}).
			Where("product_id = ?", productID).Count(&count).Error)
		return count
	}
	require.EqualValues(t, 1, specCount())

	// A form update without the specs group keeps the stored set.
	res, body = ts.SendMultipartRequest(t, tx, http.MethodPut, "/api/v1/products/"+productID, editorToken,
		map[string][]string{"brand": {"ASUS"}})
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.EqualValues(t, 1, specCount())

	// A bare specs field with no indexed rows clears them all.
	res, body = ts.SendMultipartRequest(t, tx, http.MethodPut, "/api/v1/products/"+productID, editorToken,
		map[string][]string{"specs": {""}})
	require.Equal(t, http.StatusOK, res.Code, body)
	assert.EqualValues(t, 0, specCount())
}
