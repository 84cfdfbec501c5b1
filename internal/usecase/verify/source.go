package verify

import (
	"net/url"
	"strings"
)

// sourceLabel maps a hostname to its Arabic display label. The table is
// ordered; the first matching entry wins.
type sourceLabel struct {
	host  string
	label string
}

var sourceLabels = []sourceLabel{
	{"moe.gov.iq", "موقع وزارة التربية"},
	{"moedu.gov.iq", "موقع وزارة التربية"},
	{"mohesr.gov.iq", "موقع وزارة التعليم العالي"},
	{"moi.gov.iq", "موقع وزارة الداخلية"},
	{"mod.mil.iq", "موقع وزارة الدفاع"},
	{"oil.gov.iq", "موقع وزارة النفط"},
	{"pmo.iq", "موقع رئاسة الوزراء"},
	{"facebook.com", "فيسبوك"},
	{"x.com", "تويتر"},
	{"twitter.com", "تويتر"},
	{"instagram.com", "إنستغرام"},
	{"youtube.com", "يوتيوب"},
}

// HumanizeSource turns an evidence URL into an Arabic source label. Telegram
// links name the channel; known Iraqi government and social hosts get their
// display names; anything else falls back to the bare domain.
func HumanizeSource(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "مصدر خارجي"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	if host == "t.me" || host == "telegram.me" {
		if handle := telegramHandle(rawURL); handle != "" {
			return "قناة @" + handle
		}
		return "قناة تليجرام"
	}

	for _, sl := range sourceLabels {
		if host == sl.host || strings.HasSuffix(host, "."+sl.host) {
			return sl.label
		}
	}

	return "موقع " + host
}

// telegramHandle extracts the channel handle from a t.me message link
// (https://t.me/<handle>/<id>). Private-channel links (t.me/c/<id>/<msg>)
// carry no handle.
func telegramHandle(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 4 {
		return ""
	}
	handle := strings.TrimSpace(parts[3])
	if handle == "c" {
		return ""
	}
	return handle
}
