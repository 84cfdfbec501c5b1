package verify

import "testing"

func TestHumanizeSource(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"telegram channel post", "https://t.me/alikhbaria/4521", "قناة @alikhbaria"},
		{"telegram bare", "https://t.me", "قناة تليجرام"},
		{"telegram private channel", "https://t.me/c/1234567/89", "قناة تليجرام"},
		{"education ministry", "https://moe.gov.iq/news/123", "موقع وزارة التربية"},
		{"education ministry alt domain", "https://www.moedu.gov.iq/page", "موقع وزارة التربية"},
		{"higher education", "https://mohesr.gov.iq/x", "موقع وزارة التعليم العالي"},
		{"interior ministry", "https://moi.gov.iq/x", "موقع وزارة الداخلية"},
		{"defense ministry", "https://mod.mil.iq/x", "موقع وزارة الدفاع"},
		{"oil ministry", "https://oil.gov.iq/x", "موقع وزارة النفط"},
		{"pm office", "https://pmo.iq/x", "موقع رئاسة الوزراء"},
		{"facebook", "https://www.facebook.com/page/post", "فيسبوك"},
		{"x", "https://x.com/user/status/1", "تويتر"},
		{"twitter legacy", "https://twitter.com/user/status/1", "تويتر"},
		{"instagram", "https://instagram.com/p/abc", "إنستغرام"},
		{"youtube", "https://youtube.com/watch?v=abc", "يوتيوب"},
		{"subdomain matches", "https://news.moe.gov.iq/item", "موقع وزارة التربية"},
		{"unknown site", "https://alsumaria.tv/news/1", "موقع alsumaria.tv"},
		{"unparseable", "::::", "مصدر خارجي"},
		{"empty", "", "مصدر خارجي"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HumanizeSource(tt.url); got != tt.want {
				t.Fatalf("HumanizeSource(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
