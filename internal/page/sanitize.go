package page

import "regexp"

// 三条净化规则，作用于编辑器预览与保存前的粗过滤。
// 对外发布的页面另有 policy.go 的白名单策略，这里只挡最常见的注入形态。
var (
	reScriptTag = regexp.MustCompile(`(?is)<script[\s\S]*?>[\s\S]*?</script>`)
	reEventAttr = regexp.MustCompile(`(?i)\s(on[a-z]+)\s*=\s*("[^"]*"|'[^']*'|[^>\s]+)`)
	reJSScheme  = regexp.MustCompile(`(?i)(href|src)\s*=\s*("|')?\s*javascript:[^\s"'>]*`)
)

// Sanitize 依次执行三条规则：
//  1. 删除完整的 <script>...</script> 片段；
//  2. 删除 on* 形式的事件处理属性；
//  3. 把 href/src 里的 javascript: 协议替换为 #。
//
// 函数是幂等的：对已净化的输入再跑一次不会改变结果。
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	s := reScriptTag.ReplaceAllString(input, "")
	s = reEventAttr.ReplaceAllString(s, "")
	s = reJSScheme.ReplaceAllString(s, "$1=$2#")
	return s
}
