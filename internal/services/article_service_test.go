package services

import (
	"encoding/json"
	"testing"

	"hwreview_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestMarshalExtensionNilPassesThrough(t *testing.T) {
	raw, err := marshalExtension(models.ArticleTypeGuide, nil)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestMarshalExtensionReview(t *testing.T) {
	ext := &models.ArticleExtension{
		Review: &models.ReviewExtension{
			DesignScore:      floatPtr(8.5),
			PerformanceScore: floatPtr(9.0),
			Pros:             []string{"quiet", "efficient"},
		},
	}
	raw, err := marshalExtension(models.ArticleTypeReview, ext)
	require.NoError(t, err)

	var decoded models.ArticleExtension
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.NotNil(t, decoded.Review)
	assert.Equal(t, []string{"quiet", "efficient"}, decoded.Review.Pros)
}

func TestMarshalExtensionBranchMustMatchType(t *testing.T) {
	reviewExt := &models.ArticleExtension{Review: &models.ReviewExtension{}}

	_, err := marshalExtension(models.ArticleTypeBestPicks, reviewExt)
	assert.Error(t, err)

	_, err = marshalExtension(models.ArticleTypeNews, reviewExt)
	assert.Error(t, err)
}

func TestMarshalExtensionBestPicksNeedsPicks(t *testing.T) {
	empty := &models.ArticleExtension{BestPicks: &models.BestPicksExtension{}}
	_, err := marshalExtension(models.ArticleTypeBestPicks, empty)
	assert.Error(t, err)

	withPick := &models.ArticleExtension{
		BestPicks: &models.BestPicksExtension{
			Picks: []models.BestPick{{ProductID: "a", Rank: 1}},
		},
	}
	_, err = marshalExtension(models.ArticleTypeBestPicks, withPick)
	assert.NoError(t, err)
}

func TestMarshalExtensionComparisonNeedsTwoProducts(t *testing.T) {
	onlyOne := &models.ArticleExtension{
		Comparison: &models.ComparisonExtension{ProductIDs: []string{"a"}},
	}
	_, err := marshalExtension(models.ArticleTypeComparison, onlyOne)
	assert.Error(t, err)

	pair := &models.ArticleExtension{
		Comparison: &models.ComparisonExtension{ProductIDs: []string{"a", "b"}},
	}
	_, err = marshalExtension(models.ArticleTypeComparison, pair)
	assert.NoError(t, err)
}
