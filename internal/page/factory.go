package page

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// NewBlockID 生成块 ID：毫秒时间戳的 36 进制 + 6 位随机后缀。
// 只需在单个页面内唯一，不要求全局唯一。
func NewBlockID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return fmt.Sprintf("%s-%s", ts, suffix)
}

// NewBlock 按类型构造一个带默认数据和默认样式的块。
// title 用于 hero 块的默认标题；其余类型忽略。
// 未知类型返回一个空数据块，渲染时输出空串。
func NewBlock(blockType, title string) Block {
	b := Block{
		ID:   NewBlockID(),
		Type: blockType,
		Data: map[string]any{},
		Style: &Style{
			BgColor:   "bg-white",
			TextColor: "text-gray-900",
			Padding:   "py-12",
			Alignment: "center",
		},
	}
	switch blockType {
	case TypeHero:
		heading := title
		if heading == "" {
			heading = "Başlık"
		}
		b.Data = map[string]any{"heading": heading, "sub": "Kısa açıklama", "bgImage": ""}
		b.Style = &Style{BgColor: "bg-gradient-to-r from-blue-600 to-purple-600", TextColor: "text-white", Padding: "py-20", Alignment: "center"}
	case TypeText:
		b.Data = map[string]any{"html": "<p>Yeni metin bloğu</p>"}
	case TypeTwoColumn:
		b.Data = map[string]any{"left": "<p>Sol</p>", "right": "<p>Sağ</p>"}
	case TypeImage:
		b.Data = map[string]any{"src": "", "alt": "", "caption": ""}
	case TypeCTA:
		b.Data = map[string]any{"text": "Hemen Başla", "href": "#", "buttonStyle": "primary"}
		b.Style = &Style{BgColor: "bg-gradient-to-r from-blue-600 to-purple-600", TextColor: "text-white", Padding: "py-16", Alignment: "center"}
	case TypeContactForm:
		b.Data = map[string]any{"title": "İletişim", "showPhone": true, "showEmail": true}
		b.Style = &Style{BgColor: "bg-gray-50", TextColor: "text-gray-900", Padding: "py-12", Alignment: "center"}
	case TypeFeatures:
		b.Data = map[string]any{
			"title": "Özellikler",
			"items": []any{
				map[string]any{"icon": "✓", "title": "Özellik 1", "desc": "Açıklama"},
				map[string]any{"icon": "✓", "title": "Özellik 2", "desc": "Açıklama"},
				map[string]any{"icon": "✓", "title": "Özellik 3", "desc": "Açıklama"},
			},
		}
		b.Style = &Style{BgColor: "bg-white", TextColor: "text-gray-900", Padding: "py-16", Alignment: "center"}
	case TypeTestimonials:
		b.Data = map[string]any{
			"title": "Kullanıcı Yorumları",
			"items": []any{
				map[string]any{"name": "Ahmet Y.", "text": "Harika bir deneyim!", "rating": 5},
			},
		}
		b.Style = &Style{BgColor: "bg-gray-50", TextColor: "text-gray-900", Padding: "py-16", Alignment: "center"}
	case TypePricing:
		b.Data = map[string]any{
			"title": "Fiyatlandırma",
			"plans": []any{
				map[string]any{"name": "Temel", "price": "99₺", "features": []any{"Özellik 1", "Özellik 2"}, "highlight": false},
			},
		}
		b.Style = &Style{BgColor: "bg-white", TextColor: "text-gray-900", Padding: "py-16", Alignment: "center"}
	case TypeFAQ:
		b.Data = map[string]any{
			"title": "Sıkça Sorulan Sorular",
			"items": []any{
				map[string]any{"q": "Soru?", "a": "Cevap"},
			},
		}
		b.Style = &Style{BgColor: "bg-gray-50", TextColor: "text-gray-900", Padding: "py-12", Alignment: "center"}
	case TypeStats:
		b.Data = map[string]any{
			"items": []any{
				map[string]any{"number": "1000+", "label": "Kullanıcı"},
				map[string]any{"number": "50+", "label": "Kurs"},
			},
		}
		b.Style = &Style{BgColor: "bg-gradient-to-r from-blue-600 to-purple-600", TextColor: "text-white", Padding: "py-12", Alignment: "center"}
	case TypeGallery:
		b.Data = map[string]any{
			"title":  "Galeri",
			"images": []any{map[string]any{"src": "", "alt": ""}},
		}
		b.Style = &Style{BgColor: "bg-white", TextColor: "text-gray-900", Padding: "py-12", Alignment: "center"}
	}
	return b
}
