package ratelimit

import "strings"

// unlimited is returned for the health check
var unlimited = Rule{}

// Match returns the rule for a request: an exact path match first, then the
// first prefix rule. It returns nil when the default limit applies.
func Match(path, method string, rules []Rule) *Rule {
	if path == "/health" && method == "GET" {
		return &unlimited
	}

	for i := range rules {
		if rules[i].Method == method && rules[i].Path == path {
			return &rules[i]
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}
