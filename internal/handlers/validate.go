package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for theme and settings fields.
const (
	maxSubjectLen      = 300
	maxKeywordLen      = 100
	maxKeywords        = 25
	maxOrgNameLen      = 200
	maxSettingValueLen = 2_000
	maxSuggestionBatch = 50
)

// validateSubject checks a theme subject matter and returns the first
// error found, or "".
func validateSubject(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "Subject matter is required."
	}
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		return "Subject matter is too long (max 300 characters)."
	}
	return ""
}

// validateKeywords checks a keyword list.
func validateKeywords(keywords []string) string {
	if len(keywords) > maxKeywords {
		return "Too many keywords (max 25)."
	}
	for _, kw := range keywords {
		if utf8.RuneCountInString(kw) > maxKeywordLen {
			return "Keyword is too long (max 100 characters)."
		}
	}
	return ""
}

// validateOrgName checks an organisation name.
func validateOrgName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Organisation name is required."
	}
	if utf8.RuneCountInString(name) > maxOrgNameLen {
		return "Organisation name is too long (max 200 characters)."
	}
	return ""
}

// validateSettingValue checks a settings value.
func validateSettingValue(value string) string {
	if utf8.RuneCountInString(value) > maxSettingValueLen {
		return "Setting value is too long (max 2,000 characters)."
	}
	return ""
}
