package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"turkish characters", "Özel Baskı", "ozel-baski"},
		{"more turkish characters", "Broşür Baskısı", "brosur-baskisi"},
		{"cedilla and breve", "Çift Yönlü Kağıt", "cift-yonlu-kagit"},
		{"punctuation collapsed", "Hello,   World!!", "hello-world"},
		{"leading and trailing noise", "  --Kartvizit--  ", "kartvizit"},
		{"digits kept", "A4 Poster 2025", "a4-poster-2025"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}
