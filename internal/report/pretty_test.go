package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/flowtests/internal/models"
)

func TestFormatMetrics(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "{}", FormatMetrics(models.NewMetrics()))
	})

	t.Run("single subject", func(t *testing.T) {
		m := models.NewMetrics()
		m.Set("Foo", models.MetricTable{{Key: 16, Value: models.MetricTuple{1, 2, 3, 4}}})
		assert.Equal(t, "{'Foo': {16: (1.0, 2.0, 3.0, 4.0)}}", FormatMetrics(m))
	})

	t.Run("sorted subjects and keys", func(t *testing.T) {
		m := models.NewMetrics()
		m.Set("Foo", models.MetricTable{
			{Key: 32, Value: models.MetricTuple{0.5, -1, 2.25, 0}},
			{Key: 16, Value: models.MetricTuple{1, 1, 1, 1}},
		})
		m.Set("Bar", models.MetricTable{})

		want := "{'Bar': {}, 'Foo': {16: (1.0, 1.0, 1.0, 1.0), 32: (0.5, -1.0, 2.25, 0.0)}}"
		assert.Equal(t, want, FormatMetrics(m))
	})

	t.Run("wraps subjects past the width", func(t *testing.T) {
		m := models.NewMetrics()
		row := models.MetricTable{{Key: 16, Value: models.MetricTuple{1, 2, 3, 4}}}
		m.Set("Gamma", row)
		m.Set("Alpha", row)
		m.Set("Beta", row)

		want := "{'Alpha': {16: (1.0, 2.0, 3.0, 4.0)},\n" +
			" 'Beta': {16: (1.0, 2.0, 3.0, 4.0)},\n" +
			" 'Gamma': {16: (1.0, 2.0, 3.0, 4.0)}}"
		assert.Equal(t, want, FormatMetrics(m))
	})

	t.Run("wraps a wide table under its first key", func(t *testing.T) {
		m := models.NewMetrics()
		m.Set("Foo", models.MetricTable{
			{Key: 128, Value: models.MetricTuple{9, 10, 11, 12}},
			{Key: 32, Value: models.MetricTuple{5, 6, 7, 8}},
			{Key: 16, Value: models.MetricTuple{1, 2, 3, 4}},
		})
		m.Set("Bar", models.MetricTable{
			{Key: 32, Value: models.MetricTuple{5, 6, 7, 8}},
			{Key: 16, Value: models.MetricTuple{1, 2, 3, 4}},
		})

		want := "{'Bar': {16: (1.0, 2.0, 3.0, 4.0), 32: (5.0, 6.0, 7.0, 8.0)},\n" +
			" 'Foo': {16: (1.0, 2.0, 3.0, 4.0),\n" +
			"         32: (5.0, 6.0, 7.0, 8.0),\n" +
			"         128: (9.0, 10.0, 11.0, 12.0)}}"
		assert.Equal(t, want, FormatMetrics(m))
	})

	t.Run("quotes names", func(t *testing.T) {
		m := models.NewMetrics()
		m.Set("It's", models.MetricTable{})
		assert.Equal(t, `{'It\'s': {}}`, FormatMetrics(m))
	})
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		0:           "0.0",
		1:           "1.0",
		-3.5:        "-3.5",
		0.1:         "0.1",
		100000000:   "100000000.0",
		1e-05:       "1e-05",
		1e16:        "1e+16",
		math.Inf(1): "inf",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatFloat(in), "formatFloat(%v)", in)
	}
	assert.Equal(t, "nan", formatFloat(math.NaN()))
}
