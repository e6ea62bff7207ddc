package emotion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func TestCombineHappyText(t *testing.T) {
	scores := Combine(BaseScores{Joy: 0.9})

	assert.InDelta(t, 0.9, scores[Joy], epsilon)
	assert.InDelta(t, 1.0, scores[Excitement], epsilon, "excitement clamps 1.35 to 1")
	assert.InDelta(t, 0.0, scores[Anxiety], epsilon)
	assert.InDelta(t, 0.0, scores[Frustration], epsilon)
	assert.InDelta(t, 0.9, scores[Contentment], epsilon)
}

func TestCombineContainsAllLabels(t *testing.T) {
	scores := Combine(BaseScores{Joy: 0.1, Sadness: 0.2, Fear: 0.3, Disgust: 0.4, Anger: 0.5})

	labels := []Label{Joy, Sadness, Fear, Disgust, Anger, Excitement, Anxiety, Frustration, Contentment}
	require.Len(t, scores, len(labels))
	for _, label := range labels {
		_, ok := scores[label]
		assert.True(t, ok, "missing %s", label)
	}
	assert.InDelta(t, 0.4, scores[Disgust], epsilon)
}

func TestDeriveFormulas(t *testing.T) {
	cases := []struct {
		name string
		base BaseScores
		want DerivedScores
	}{
		{
			name: "all zero",
			base: BaseScores{},
			want: DerivedScores{},
		},
		{
			name: "sad and afraid",
			base: BaseScores{Sadness: 0.6, Fear: 0.8, Anger: 0.2},
			want: DerivedScores{Anxiety: 0.7, Frustration: 0.4},
		},
		{
			name: "sadness outweighs joy",
			base: BaseScores{Joy: 0.3, Sadness: 0.5},
			want: DerivedScores{Excitement: 0.45, Anxiety: 0.25, Frustration: 0.25},
		},
		{
			name: "saturated",
			base: BaseScores{Joy: 1, Sadness: 1, Fear: 1, Disgust: 1, Anger: 1},
			want: DerivedScores{Excitement: 1, Anxiety: 1, Frustration: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(tc.base)
			assert.InDelta(t, tc.want.Excitement, got.Excitement, epsilon)
			assert.InDelta(t, tc.want.Anxiety, got.Anxiety, epsilon)
			assert.InDelta(t, tc.want.Frustration, got.Frustration, epsilon)
			assert.InDelta(t, tc.want.Contentment, got.Contentment, epsilon)
		})
	}
}

func TestDeriveStaysInUnitRange(t *testing.T) {
	steps := []float64{0, 0.1, 0.25, 0.5, 0.66, 0.75, 0.9, 1}
	for _, joy := range steps {
		for _, sadness := range steps {
			for _, other := range steps {
				base := BaseScores{Joy: joy, Sadness: sadness, Fear: other, Disgust: other, Anger: 1 - other}
				d := Derive(base)
				for _, v := range []float64{d.Excitement, d.Anxiety, d.Frustration, d.Contentment} {
					if v < 0 || v > 1 {
						t.Fatalf("derived score %f out of range for %+v", v, base)
					}
				}
				if want := math.Min(1, 1.5*joy); math.Abs(d.Excitement-want) > epsilon {
					t.Fatalf("excitement: got %f want %f", d.Excitement, want)
				}
				if want := math.Max(0, math.Min(1, joy-sadness)); math.Abs(d.Contentment-want) > epsilon {
					t.Fatalf("contentment: got %f want %f", d.Contentment, want)
				}
			}
		}
	}
}

func TestCombineIsDeterministic(t *testing.T) {
	base := BaseScores{Joy: 0.42, Sadness: 0.13, Fear: 0.07, Disgust: 0.02, Anger: 0.31}
	assert.Equal(t, Combine(base), Combine(base))
}

func TestBaseScoresClamp(t *testing.T) {
	got := BaseScores{Joy: 1.4, Sadness: -0.2, Fear: math.NaN(), Disgust: 0.5, Anger: 1}.Clamp()
	assert.Equal(t, BaseScores{Joy: 1, Sadness: 0, Fear: 0, Disgust: 0.5, Anger: 1}, got)
}
