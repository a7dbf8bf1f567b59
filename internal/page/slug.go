package page

import (
	"regexp"
	"strings"
)

var (
	reSlugDrop  = regexp.MustCompile(`[^a-z0-9\- ]+`)
	reSlugSpace = regexp.MustCompile(`\s+`)
)

// Slugify 把任意标题转成 URL slug：小写、去掉字母数字连字符
// 空格以外的字符、空白折叠为单个连字符。slug 不带前导斜杠存储。
// 注意不做音译，重音字符直接丢弃（"Ünlü" -> "nl"），与编辑器行为一致。
func Slugify(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	s = reSlugDrop.ReplaceAllString(s, "")
	s = reSlugSpace.ReplaceAllString(s, "-")
	return s
}

// NormalizeSlug 去掉路由层可能带进来的前导斜杠。
func NormalizeSlug(s string) string {
	return strings.TrimPrefix(s, "/")
}
