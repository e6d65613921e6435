// Package whatsapp arma enlaces wa.me para contactar clientas.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// CountryCode prefijo de Brasil.
const CountryCode = "55"

// Digits deja solo los dígitos de un teléfono.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Greeting saludo por defecto para la clienta.
func Greeting(name string) string {
	return fmt.Sprintf("Olá %s ✨, tudo bem?", strings.TrimSpace(name))
}

// Link https://wa.me/55<dígitos>?text=<mensaje codificado>.
// Si el teléfono ya trae el prefijo 55 con 12 o 13 dígitos no se duplica.
func Link(phone, message string) (string, error) {
	digits := Digits(phone)
	if len(digits) < 10 {
		return "", fmt.Errorf("whatsapp: teléfono %q incompleto", phone)
	}
	if !(strings.HasPrefix(digits, CountryCode) && len(digits) >= 12) {
		digits = CountryCode + digits
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text, nil
}
