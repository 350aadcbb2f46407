package customer

import "strings"

// FormatPlatform classifies a raw platform or entitlement source string.
// The checks run in a fixed priority order because inputs can match several
// rules ("ios_production" must classify as "iOS", not be suppressed as an
// environment string):
//
//  1. ios / appstore / app_store  -> "iOS"
//  2. android / playstore / play_store -> "Android"
//  3. stripe / web -> "Web"
//  4. prod -> "" (environment string, not a platform)
//  5. anything else -> capitalized input
func FormatPlatform(raw string) string {
	platform := strings.ToLower(strings.TrimSpace(raw))
	if platform == "" {
		return ""
	}

	switch {
	case containsAny(platform, "ios", "appstore", "app_store"):
		return "iOS"
	case containsAny(platform, "android", "playstore", "play_store"):
		return "Android"
	case containsAny(platform, "stripe", "web"):
		return "Web"
	case strings.Contains(platform, "prod"):
		return ""
	}

	return strings.ToUpper(platform[:1]) + platform[1:]
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
