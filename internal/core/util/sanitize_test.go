package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Manni1403/taskboard-assessment/internal/core/util"
)

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Buy milk", "Buy milk"},
		{"script tag stripped", "<script>alert(1)</script>Hi", "Hi"},
		{"inline markup stripped", "<b>bold</b> move", "bold move"},
		{"entities round-trip to text", "a < b && b > c", "a < b && b > c"},
		{"markup only collapses to empty", "<img src=x onerror=alert(1)>", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, util.SanitizeText(tc.input))
		})
	}
}

func TestSanitizeText_Idempotent(t *testing.T) {
	input := "<p>hello <i>world</i></p>"

	once := util.SanitizeText(input)
	twice := util.SanitizeText(once)

	assert.Equal(t, once, twice)
}

func TestSanitizeDescription(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, util.SanitizeDescription(nil))
	})

	t.Run("blank after sanitize becomes nil", func(t *testing.T) {
		input := "  <b></b>  "
		assert.Nil(t, util.SanitizeDescription(&input))
	})

	t.Run("content survives", func(t *testing.T) {
		input := "<script>x</script>notes"
		got := util.SanitizeDescription(&input)

		assert.NotNil(t, got)
		assert.Equal(t, "notes", *got)
	})
}
