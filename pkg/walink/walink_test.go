package walink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hylatrack/leads-api/pkg/walink"
)

func TestIsValidWhatsapp(t *testing.T) {
	cases := []struct {
		number string
		want   bool
	}{
		{"123456789", true},           // 9 dígitos: mínimo válido
		{"123456789012345", true},     // 15 dígitos: máximo válido
		{"56912345678", true},         // formato chileno típico
		{"12345678", false},           // 8 dígitos: muy corto
		{"12345678901234567", false},  // 17 dígitos: muy largo
		{"12345abcd", false},          // letras
		{"+56912345678", false},       // prefijo no numérico
		{"1234 56789", false},         // espacios
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, walink.IsValidWhatsapp(tc.number), "número %q", tc.number)
	}
}

func TestLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/56912345678", walink.Link("56912345678"))
	assert.Equal(t, "", walink.Link(""), "entrada vacía devuelve cadena vacía")
}

func TestPrefilledLink(t *testing.T) {
	link := walink.PrefilledLink("56912345678", "Hola María")
	assert.Contains(t, link, "https://wa.me/56912345678?text=")
	assert.NotContains(t, link, " ", "el mensaje debe ir url-encodeado")

	assert.Equal(t, "", walink.PrefilledLink("", "Hola"))
}

func TestMapsLink(t *testing.T) {
	link := walink.MapsLink("Av. Siempre Viva 123", "", "RM", "Chile")
	assert.Contains(t, link, "https://www.google.com/maps/search/?api=1&query=")
	// Las partes vacías no aportan comas extra.
	assert.NotContains(t, link, "%2C+%2C")
}

func TestAllowedImageExtension(t *testing.T) {
	assert.True(t, walink.AllowedImageExtension("foto.jpg"))
	assert.True(t, walink.AllowedImageExtension("FOTO.JPEG"))
	assert.True(t, walink.AllowedImageExtension("casa.png"))
	assert.True(t, walink.AllowedImageExtension("living.webp"))
	assert.False(t, walink.AllowedImageExtension("animacion.gif"))
	assert.False(t, walink.AllowedImageExtension("documento.pdf"))
	assert.False(t, walink.AllowedImageExtension("sinextension"))
}
