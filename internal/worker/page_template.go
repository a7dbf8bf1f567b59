package worker

import (
	"bytes"
	"fmt"
	"html/template"

	"coursecms/internal/page"
)

// pageDocumentTemplate 是快照渲染用的 HTML 外壳。
// 块渲染产出的是 Tailwind class 片段，截图前需要 CDN 运行时把
// class 编译成真实样式，效果才与前端公开页一致。
const pageDocumentTemplate = `<!DOCTYPE html>
<html lang="tr">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
        body { margin: 0; font-family: ui-sans-serif, system-ui, sans-serif; }
    </style>
</head>
<body>
{{.Body}}
</body>
</html>`

var pageDocument = template.Must(template.New("page-document").Parse(pageDocumentTemplate))

// BuildPageDocument 把一条页面记录包装成完整的 HTML 文档。
// 块存在时以块渲染为准，与保存逻辑的取舍一致；正文在嵌入前
// 先过一遍净化规则。
func BuildPageDocument(p page.Page) (string, error) {
	body := p.Content
	if len(p.Blocks) > 0 {
		body = page.RenderBlocks(p.Blocks)
	}
	body = page.Sanitize(body)

	var buf bytes.Buffer
	err := pageDocument.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{
		Title: p.Title,
		Body:  template.HTML(body),
	})
	if err != nil {
		return "", fmt.Errorf("execute page document template: %w", err)
	}
	return buf.String(), nil
}
