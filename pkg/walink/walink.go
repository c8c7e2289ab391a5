// Package walink valida números de WhatsApp y genera enlaces profundos
// (WhatsApp y Google Maps) usados en la ficha de cada lead.
package walink

import (
	"net/url"
	"strings"
)

// IsValidWhatsapp valida un número de WhatsApp: solo dígitos, entre 9 y 15.
func IsValidWhatsapp(number string) bool {
	if len(number) < 9 || len(number) > 15 {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Link genera el enlace wa.me para un número. Entrada vacía devuelve cadena vacía.
func Link(number string) string {
	if number == "" {
		return ""
	}
	return "https://wa.me/" + number
}

// PrefilledLink genera el enlace wa.me con un mensaje precargado.
func PrefilledLink(number, message string) string {
	if number == "" {
		return ""
	}
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

// MapsLink genera un enlace de búsqueda en Google Maps con las partes no vacías
// de la dirección unidas por comas.
func MapsLink(addressLine, city, region, country string) string {
	var parts []string
	for _, p := range []string{addressLine, city, region, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	query := url.QueryEscape(strings.Join(parts, ", "))
	return "https://www.google.com/maps/search/?api=1&query=" + query
}

// AllowedImageExtension indica si el archivo tiene una extensión de imagen permitida.
func AllowedImageExtension(filename string) bool {
	name := strings.ToLower(filename)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
