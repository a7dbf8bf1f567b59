package page

import "encoding/json"

// 块类型闭集。编辑器下拉框只会产生这些值；其余值在渲染时输出空串。
const (
	TypeHero         = "hero"
	TypeText         = "text"
	TypeTwoColumn    = "two-column"
	TypeImage        = "image"
	TypeCTA          = "cta"
	TypeContactForm  = "contact-form"
	TypeFeatures     = "features"
	TypeTestimonials = "testimonials"
	TypePricing      = "pricing"
	TypeFAQ          = "faq"
	TypeStats        = "stats"
	TypeGallery      = "gallery"
)

// 页面状态。
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusPrivate   = "private"
)

// Style 是所有块共享的四个展示属性。
// 取值来自编辑器提供的固定选项集（Tailwind class token），不是任意 CSS。
type Style struct {
	BgColor   string `json:"bgColor,omitempty"`
	TextColor string `json:"textColor,omitempty"`
	Padding   string `json:"padding,omitempty"`
	Alignment string `json:"alignment,omitempty"`
}

// Block 表示页面中的单个内容块。
// ID 在创建时分配、终生不变；Type 创建后不可修改，编辑只改 Data/Style。
// Data 按 Type 约定的字段集存放（见 render.go 中各 variant 的结构体），
// 以 map 形式保存以保持与存储 JSON 的字段级一致。
type Block struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Data  map[string]any `json:"data"`
	Style *Style         `json:"style,omitempty"`
}

// Page 表示一条持久化的页面记录。
// 字段名与存储 JSON 一一对应；slug 始终不带前导斜杠，时间戳为 ISO-8601。
type Page struct {
	ID              int     `json:"id"`
	Title           string  `json:"title"`
	Slug            string  `json:"slug"`
	Status          string  `json:"status"`
	Content         string  `json:"content"`
	Blocks          []Block `json:"blocks,omitempty"`
	Author          string  `json:"author"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
	Views           int     `json:"views"`
	IsHomepage      bool    `json:"isHomepage"`
	InMenu          bool    `json:"in_menu"`
	PageType        string  `json:"page_type,omitempty"`
	PreviewImageURL string  `json:"previewImageUrl,omitempty"`
}

// IsPublished 返回页面是否已发布。
func (p *Page) IsPublished() bool {
	return p.Status == StatusPublished
}

// decodeData 将块的 map 数据解码为 variant 对应的具体结构体。
// 字段缺失或类型不符时保持零值，不报错：作者手工编辑 JSON 时
// 的坏值只应表现为空渲染，绝不能让编辑器崩溃。
func decodeData[T any](b Block) T {
	var v T
	raw, err := json.Marshal(b.Data)
	if err != nil {
		return v
	}
	_ = json.Unmarshal(raw, &v)
	return v
}
