package qr

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepLinks(t *testing.T) {
	assert.Equal(t,
		"https://entry.example.com/frequent/qr/checkin/comp-1",
		CheckinURL("https://entry.example.com", "comp-1"))
	assert.Equal(t,
		"https://entry.example.com/frequent/qr/checkout/comp-1",
		CheckoutURL("https://entry.example.com", "comp-1"))

	// Ids with reserved characters are escaped
	assert.Equal(t,
		"https://entry.example.com/frequent/qr/checkin/a%2Fb",
		CheckinURL("https://entry.example.com", "a/b"))
}

func TestPNG(t *testing.T) {
	png, err := PNG("https://entry.example.com/frequent/qr/checkin/comp-1", 0)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte{0x89, 'P', 'N', 'G'}))
}
