package collecting_test

import (
	"math"
	"testing"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/collecting/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newNaverLikeCollector(ctrl *gomock.Controller) *mocks.MockCollector {
	c := mocks.NewMockCollector(ctrl)
	c.EXPECT().Platform().Return(domain.PlatformNaver).AnyTimes()
	c.EXPECT().Supports(gomock.Any()).DoAndReturn(func(t domain.CollectionType) bool {
		return t != domain.CollectionTypeDemographics
	}).AnyTimes()
	return c
}

func TestRegistry_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	naver := newNaverLikeCollector(ctrl)
	registry := collecting.NewRegistry(naver)

	c, err := registry.Resolve(domain.PlatformNaver, domain.CollectionTypeAds)
	require.NoError(t, err)
	assert.Equal(t, naver, c)

	_, err = registry.Resolve(domain.PlatformNaver, domain.CollectionTypeDemographics)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCollection)

	_, err = registry.Resolve(domain.PlatformGoogle, domain.CollectionTypeAds)
	assert.ErrorIs(t, err, domain.ErrUnsupportedCollection)

	assert.Equal(t, []domain.Platform{domain.PlatformNaver}, registry.Platforms())
}

func TestExpandCollectionType(t *testing.T) {
	ctrl := gomock.NewController(t)
	naver := newNaverLikeCollector(ctrl)

	assert.Equal(t, []domain.CollectionType{domain.CollectionTypeAds}, collecting.ExpandCollectionType(naver, domain.CollectionTypeDaily))
	assert.Equal(t, []domain.CollectionType{domain.CollectionTypeCreatives}, collecting.ExpandCollectionType(naver, domain.CollectionTypeCreatives))
}

func TestPreparePerformance(t *testing.T) {
	name := "Campanha"
	nan := math.NaN()

	rows := []*domain.PerformanceRow{
		{AdID: "A1", Impressions: 100, Clicks: 2, CampaignName: &name, Cost: math.Inf(1), CostPerClick: &nan},
		{AdID: "A2"},
		{AdID: "A3", Conversions: 1},
	}

	out := collecting.PreparePerformance(rows)

	require.Len(t, out, 2)
	assert.Equal(t, "A1", out[0].AdID)
	assert.Zero(t, out[0].Cost)
	assert.Zero(t, out[0].ConversionValue)
	require.NotNil(t, out[0].CostPerClick)
	assert.Zero(t, *out[0].CostPerClick)
	assert.Equal(t, []string{domain.IssueMissingAdGroupName, domain.IssueMissingAdName}, out[0].Issues)

	assert.Equal(t, "A3", out[1].AdID)
	assert.Equal(t, []string{domain.IssueMissingCampaignName, domain.IssueMissingAdGroupName, domain.IssueMissingAdName}, out[1].Issues)
}

func TestPrepareDemographics(t *testing.T) {
	out := collecting.PrepareDemographics([]*domain.DemographicRow{
		{Gender: domain.GenderMale, Clicks: 1},
		{Gender: domain.GenderFemale},
	})

	require.Len(t, out, 1)
	assert.Equal(t, domain.GenderMale, out[0].Gender)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, collecting.OptionalString(""))
	assert.Nil(t, collecting.OptionalString("  "))
	require.NotNil(t, collecting.OptionalString("x"))
	assert.Equal(t, "x", *collecting.OptionalString("x"))
}
