package chatbot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, time.March, 11, 15, 30, 0, 0, time.UTC) // a Wednesday

func TestResolveDate_RelativeVocabulary(t *testing.T) {
	cases := map[string]string{
		"aujourd'hui":   "2026-03-11",
		"Aujourd’hui":   "2026-03-11",
		"today":         "2026-03-11",
		"demain":        "2026-03-12",
		"tomorrow":      "2026-03-12",
		"hier":          "2026-03-10",
		"yesterday":     "2026-03-10",
		"cette semaine": "2026-03-09",
		"this week":     "2026-03-09",
	}
	for raw, want := range cases {
		d := ResolveDate(raw, refNow)
		require.NotNil(t, d, "raw: %q", raw)
		assert.Equal(t, want, d.Format("2006-01-02"), "raw: %q", raw)
	}
}

func TestResolveDate_FrenchDayMonth(t *testing.T) {
	d := ResolveDate("12 janvier", refNow)
	require.NotNil(t, d)
	assert.Equal(t, "2026-01-12", d.Format("2006-01-02"))

	d = ResolveDate("1 aout", refNow)
	require.NotNil(t, d)
	assert.Equal(t, "2026-08-01", d.Format("2006-01-02"))
}

func TestResolveDate_NumericLayouts(t *testing.T) {
	d := ResolveDate("2026-04-02", refNow)
	require.NotNil(t, d)
	assert.Equal(t, "2026-04-02", d.Format("2006-01-02"))

	d = ResolveDate("02/04/2026", refNow)
	require.NotNil(t, d)
	assert.Equal(t, "2026-04-02", d.Format("2006-01-02"))
}

func TestResolveDate_UnresolvableReturnsNil(t *testing.T) {
	assert.Nil(t, ResolveDate("bientôt", refNow))
	assert.Nil(t, ResolveDate("45 janvier", refNow))
	assert.Nil(t, ResolveDate("", refNow))
}

func TestResolveDateISO(t *testing.T) {
	iso := ResolveDateISO("demain", refNow)
	require.NotNil(t, iso)
	assert.Equal(t, "2026-03-12", *iso)

	assert.Nil(t, ResolveDateISO("n'importe quoi", refNow))
}
