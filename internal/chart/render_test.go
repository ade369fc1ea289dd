package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AferDust/finances-datagram-telegram-bot/internal/domain"
)

func TestRender_PNG(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render([]domain.Point{
		{Value: 1000, Month: domain.January},
		{Value: 1500, Month: domain.February},
		{Value: 0, Month: domain.March},
	}, domain.FieldIncome, 2024)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Positive(t, cfg.Width)
	assert.Positive(t, cfg.Height)
}

func TestRender_SingleBarAndAllZero(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render([]domain.Point{{Value: 600, Month: domain.January}}, domain.FieldProfit, 2024)
	require.NoError(t, err)

	_, err = r.Render([]domain.Point{{Value: 0, Month: domain.May}, {Value: 0, Month: domain.June}}, domain.FieldKPN, 2024)
	require.NoError(t, err)
}

func TestRender_FullYear(t *testing.T) {
	points := make([]domain.Point, 0, 12)
	for i, m := range domain.Months {
		points = append(points, domain.Point{Value: int64(i * 100), Month: m})
	}
	_, err := NewRenderer().Render(points, domain.FieldExpenses, 2023)
	require.NoError(t, err)
}

func TestRender_NoData(t *testing.T) {
	_, err := NewRenderer().Render(nil, domain.FieldIncome, 2024)
	assert.ErrorIs(t, err, ErrNoData)
}
