package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUplinks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []models.Record
	}{
		{
			name: "blank keep-alive lines collapse",
			body: "{\"a\":1}\n\n\n{\"b\":2}\n",
			want: []models.Record{{"a": 1.0}, {"b": 2.0}},
		},
		{
			name: "leading newlines",
			body: "\n\n{\"a\":1}",
			want: []models.Record{{"a": 1.0}},
		},
		{
			name: "crlf framing",
			body: "{\"a\":1}\r\n\r\n{\"b\":2}\r\n",
			want: []models.Record{{"a": 1.0}, {"b": 2.0}},
		},
		{
			name: "whitespace-only lines skipped",
			body: "{\"a\":1}\n   \n{\"b\":2}",
			want: []models.Record{{"a": 1.0}, {"b": 2.0}},
		},
		{
			name: "empty body",
			body: "",
			want: []models.Record{},
		},
		{
			name: "order preserved",
			body: "{\"n\":3}\n{\"n\":1}\n{\"n\":2}\n",
			want: []models.Record{{"n": 3.0}, {"n": 1.0}, {"n": 2.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUplinks([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeUplinks_BadLineDiscardsEverything(t *testing.T) {
	got, err := DecodeUplinks([]byte("{\"a\":1}\n\nnot json\n{\"b\":2}\n"))

	assert.Nil(t, got)
	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr), "expected DecodeError, got %T", err)
	assert.Equal(t, 2, decErr.Line)
	assert.Equal(t, "not json", decErr.Excerpt)
	assert.Error(t, decErr.Unwrap())
}

func TestDecodeUplinks_NonObjectLine(t *testing.T) {
	for _, body := range []string{"null", "42", "[1,2]", "\"text\""} {
		t.Run(body, func(t *testing.T) {
			_, err := DecodeUplinks([]byte(body))
			var decErr *DecodeError
			require.True(t, errors.As(err, &decErr))
			assert.Equal(t, 1, decErr.Line)
		})
	}
}

func TestDecodeUplinks_ExcerptIsTruncated(t *testing.T) {
	long := "{" + strings.Repeat("x", 500)
	_, err := DecodeUplinks([]byte(long))

	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, excerptLimit+len("..."), len(decErr.Excerpt))
	assert.True(t, strings.HasSuffix(decErr.Excerpt, "..."))
	assert.NotContains(t, decErr.Error(), strings.Repeat("x", 100))
}
