package http

import (
	"strings"
	"unicode"

	pkgstrings "github.com/klwxsrx/go-web-auth/pkg/strings"
)

func getRouteName(method, path string) string {
	path = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Latin, r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, path)
	return pkgstrings.ToSnakeCase(method + " " + path)
}
