package usecase

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips markup and collapses whitespace",
			input: "<html><body><h1>Menu</h1>\n\n  <p>Polévka:   Gulášová - 50 Kč</p></body></html>",
			want:  "Menu Polévka: Gulášová - 50 Kč",
		},
		{
			name:  "removes script and style content",
			input: "<html><head><style>body{color:red}</style></head><body><script>alert(1)</script>Daily menu</body></html>",
			want:  "Daily menu",
		},
		{
			name:  "trims leading and trailing whitespace",
			input: "<body>   lunch   </body>",
			want:  "lunch",
		},
		{
			name:  "plain text passes through",
			input: "Soup: Goulash 50",
			want:  "Soup: Goulash 50",
		},
		{
			name:  "empty input yields empty output",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText() = %q, want %q", got, tt.want)
			}
		})
	}
}
