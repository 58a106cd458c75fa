package sanitizer

import "regexp"

type passwordRule struct{}

var passwordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(password|пароль|passwd|pwd)\s*[:=]\s*["']?[^"'\s]{3,}["']?`),
}

func (passwordRule) Sanitize(text string) string {
	return replaceAll(text, passwordPatterns, `${1}: `+Filtered)
}

type tokenRule struct{}

var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(token|api[_-]?key|secret[_-]?key|access[_-]?token)\s*[:=]\s*["']?[a-zA-Z0-9_-]{20,}["']?`),
	regexp.MustCompile(`(?i)(bearer\s+)[a-zA-Z0-9._-]{20,}`),
}

func (tokenRule) Sanitize(text string) string {
	return replaceAll(text, tokenPatterns, `${1}`+Filtered)
}

type cardRule struct{}

var cardPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
	regexp.MustCompile(`(?i)\b(cvv2?|cvc2?)\s*[:=]\s*["']?\d{3,4}["']?`),
}

func (cardRule) Sanitize(text string) string {
	return replaceAll(text, cardPatterns, Filtered)
}

type emailRule struct{}

var emailPattern = regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

func (emailRule) Sanitize(text string) string {
	return emailPattern.ReplaceAllString(text, "[FILTERED_EMAIL]")
}

type phoneRule struct{}

// Только явные форматы: суммы и индексы из магазина не должны маскироваться.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+7\s?\(?\d{3}\)?\s?\d{3}[-.\s]?\d{2}[-.\s]?\d{2}`),
	regexp.MustCompile(`(?i)(phone|телефон|тел\.?)\s*[:=]\s*["']?[+\d\s\-()]{7,}["']?`),
}

func (phoneRule) Sanitize(text string) string {
	return replaceAll(text, phonePatterns, "[FILTERED_PHONE]")
}

func replaceAll(text string, patterns []*regexp.Regexp, repl string) string {
	for _, p := range patterns {
		text = p.ReplaceAllString(text, repl)
	}
	return text
}
