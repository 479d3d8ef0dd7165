package discovery

import "strings"

// Normalize lowercases and trims raw names, dropping wildcard entries and
// anything that is neither domain nor under it. Duplicates are removed;
// order of first occurrence is kept.
func Normalize(domain string, raw []string) []string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	suffix := "." + domain

	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, r := range raw {
		clean := strings.ToLower(strings.TrimSpace(r))
		if clean == "" || strings.Contains(clean, "*") {
			continue
		}
		if clean != domain && !strings.HasSuffix(clean, suffix) {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		result = append(result, clean)
	}
	return result
}

// Expand prefixes every wordlist label to domain. The names go through
// Normalize, so a label carrying '*' yields nothing.
func Expand(domain string, labels []string) []string {
	result := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.ToLower(strings.Trim(strings.TrimSpace(label), "."))
		if label == "" {
			continue
		}
		result = append(result, label+"."+domain)
	}
	return Normalize(domain, result)
}
