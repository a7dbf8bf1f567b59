package page

import "github.com/microcosm-cc/bluemonday"

// ServePolicy 是对外发布页面时使用的白名单策略。
// 在 Sanitize 的正则过滤之上再过一层：基于 UGC 白名单，
// 放行渲染模板会产生的结构性元素和 class/style 属性。
func ServePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("section", "details", "summary", "form", "input", "textarea", "button", "span")
	p.AllowAttrs("class").Globally()
	// hero 块的背景图以内联 style 输出
	p.AllowAttrs("style").OnElements("section")
	p.AllowAttrs("placeholder", "type").OnElements("input", "textarea", "button")
	p.AllowStyles("background-image", "background-size", "background-position").OnElements("section")
	return p
}
