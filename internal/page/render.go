package page

import (
	"fmt"
	"strings"
)

// 各块类型 Data 字段的约定结构。渲染时从 map 解码，缺失字段取零值。
type (
	HeroData struct {
		Heading string `json:"heading"`
		Sub     string `json:"sub"`
		BgImage string `json:"bgImage"`
	}

	TextData struct {
		HTML string `json:"html"`
	}

	TwoColumnData struct {
		Left  string `json:"left"`
		Right string `json:"right"`
	}

	ImageData struct {
		Src     string `json:"src"`
		Alt     string `json:"alt"`
		Caption string `json:"caption"`
	}

	CTAData struct {
		Text        string `json:"text"`
		Href        string `json:"href"`
		ButtonStyle string `json:"buttonStyle"`
	}

	ContactFormData struct {
		Title     string `json:"title"`
		ShowPhone bool   `json:"showPhone"`
		ShowEmail bool   `json:"showEmail"`
	}

	FeatureItem struct {
		Icon  string `json:"icon"`
		Title string `json:"title"`
		Desc  string `json:"desc"`
	}

	FeaturesData struct {
		Title string        `json:"title"`
		Items []FeatureItem `json:"items"`
	}

	TestimonialItem struct {
		Name   string `json:"name"`
		Text   string `json:"text"`
		Rating int    `json:"rating"`
	}

	TestimonialsData struct {
		Title string            `json:"title"`
		Items []TestimonialItem `json:"items"`
	}

	PricingPlan struct {
		Name      string   `json:"name"`
		Price     string   `json:"price"`
		Features  []string `json:"features"`
		Highlight bool     `json:"highlight"`
	}

	PricingData struct {
		Title string        `json:"title"`
		Plans []PricingPlan `json:"plans"`
	}

	FAQItem struct {
		Q string `json:"q"`
		A string `json:"a"`
	}

	FAQData struct {
		Title string    `json:"title"`
		Items []FAQItem `json:"items"`
	}

	StatItem struct {
		Number string `json:"number"`
		Label  string `json:"label"`
	}

	StatsData struct {
		Items []StatItem `json:"items"`
	}

	GalleryImage struct {
		Src string `json:"src"`
		Alt string `json:"alt"`
	}

	GalleryData struct {
		Title  string `json:"title"`
		Images []GalleryImage `json:"images"`
	}
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML 转义 & < > " 四个字符。单引号不转义，与渲染模板的
// 属性引用方式（双引号）配套。
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return EscapeHTML(s)
}

// RenderBlocks 把块序列渲染为 HTML 片段，块之间以换行符连接。
// 渲染是纯函数：相同输入永远产生相同输出。
// text 与 two-column 的 HTML 字段按作者原样输出，不做转义，
// 对外发布前由发布侧的净化策略兜底。
func RenderBlocks(blocks []Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = renderBlock(b)
	}
	return strings.Join(parts, "\n")
}

func renderBlock(b Block) string {
	bgClass := "bg-white"
	textClass := "text-gray-900"
	paddingClass := "py-12"
	alignClass := "text-left"
	if b.Style != nil {
		if b.Style.BgColor != "" {
			bgClass = b.Style.BgColor
		}
		if b.Style.TextColor != "" {
			textClass = b.Style.TextColor
		}
		if b.Style.Padding != "" {
			paddingClass = b.Style.Padding
		}
		switch b.Style.Alignment {
		case "center":
			alignClass = "text-center"
		case "right":
			alignClass = "text-right"
		}
	}

	switch b.Type {
	case TypeHero:
		d := decodeData[HeroData](b)
		bgImage := ""
		if d.BgImage != "" {
			bgImage = fmt.Sprintf(`style="background-image: url('%s'); background-size: cover; background-position: center;"`, escapeAttr(d.BgImage))
		}
		subAlign := ""
		if alignClass == "text-center" {
			subAlign = "mx-auto"
		}
		return fmt.Sprintf(`
          <section class="relative min-h-[500px] flex items-center overflow-hidden %s" %s>
            <div class="absolute inset-0 bg-gradient-to-br from-violet-900/20 via-blue-900/20 to-indigo-900/20"></div>
            <div class="relative z-10 container mx-auto px-4 %s">
              <h1 class="text-5xl md:text-7xl font-bold mb-6 %s">%s</h1>
              <p class="text-xl md:text-2xl opacity-90 %s max-w-3xl %s">%s</p>
            </div>
          </section>`,
			bgClass, bgImage, alignClass, textClass, EscapeHTML(d.Heading), textClass, subAlign, EscapeHTML(d.Sub))

	case TypeText:
		d := decodeData[TextData](b)
		return fmt.Sprintf(`<section class="container mx-auto px-4 %s %s"><div class="prose prose-lg max-w-none %s %s">%s</div></section>`,
			paddingClass, bgClass, textClass, alignClass, d.HTML)

	case TypeTwoColumn:
		d := decodeData[TwoColumnData](b)
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s">
            <div class="grid md:grid-cols-2 gap-12 items-start %s">
              <div class="bg-white/80 backdrop-blur-sm rounded-2xl p-8 shadow-lg hover:shadow-2xl transition-all duration-300">%s</div>
              <div class="bg-white/80 backdrop-blur-sm rounded-2xl p-8 shadow-lg hover:shadow-2xl transition-all duration-300">%s</div>
            </div>
          </section>`,
			paddingClass, bgClass, textClass, d.Left, d.Right)

	case TypeImage:
		d := decodeData[ImageData](b)
		caption := ""
		if d.Caption != "" {
			caption = fmt.Sprintf(`<p class="text-sm text-gray-600 mt-4 %s">%s</p>`, alignClass, EscapeHTML(d.Caption))
		}
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s %s">
            <div class="rounded-2xl overflow-hidden shadow-2xl hover:shadow-3xl transition-all duration-300 transform hover:scale-105">
              <img src="%s" alt="%s" class="w-full"/>
            </div>
            %s
          </section>`,
			paddingClass, bgClass, alignClass, escapeAttr(d.Src), escapeAttr(d.Alt), caption)

	case TypeCTA:
		d := decodeData[CTAData](b)
		btnClass := "bg-gradient-to-r from-yellow-400 to-orange-400 hover:from-yellow-500 hover:to-orange-500 text-gray-900"
		if d.ButtonStyle == "secondary" {
			btnClass = "bg-gray-800 hover:bg-gray-900"
		}
		href := d.Href
		if href == "" {
			href = "#"
		}
		text := d.Text
		if text == "" {
			text = "CTA"
		}
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s %s">
            <a href="%s" class="inline-flex items-center %s text-white px-8 py-4 rounded-2xl text-lg font-semibold shadow-2xl hover:shadow-yellow-400/25 transition-all duration-300 transform hover:scale-105">
              %s
            </a>
          </section>`,
			paddingClass, bgClass, alignClass, escapeAttr(href), btnClass, EscapeHTML(text))

	case TypeContactForm:
		d := decodeData[ContactFormData](b)
		title := d.Title
		if title == "" {
			title = "İletişim"
		}
		wrapAlign := ""
		if alignClass == "text-center" {
			wrapAlign = "mx-auto"
		}
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s">
            <div class="max-w-2xl %s">
              <h2 class="text-4xl font-bold mb-8 %s %s">%s</h2>
              <form class="bg-white/80 backdrop-blur-sm rounded-2xl p-8 shadow-xl space-y-4">
                <input placeholder="İsim" class="w-full border border-gray-200 px-4 py-3 rounded-xl focus:border-blue-500 focus:ring-2 focus:ring-blue-200 transition-all" />
                <input placeholder="E-posta" type="email" class="w-full border border-gray-200 px-4 py-3 rounded-xl focus:border-blue-500 focus:ring-2 focus:ring-blue-200 transition-all" />
                <textarea placeholder="Mesaj" class="w-full border border-gray-200 px-4 py-3 rounded-xl h-32 focus:border-blue-500 focus:ring-2 focus:ring-blue-200 transition-all"></textarea>
                <button type="submit" class="w-full bg-gradient-to-r from-blue-600 to-purple-600 text-white px-6 py-3 rounded-xl font-semibold hover:shadow-lg transition-all duration-300 transform hover:scale-105">Gönder</button>
              </form>
            </div>
          </section>`,
			paddingClass, bgClass, wrapAlign, textClass, alignClass, EscapeHTML(title))

	case TypeFeatures:
		d := decodeData[FeaturesData](b)
		title := d.Title
		if title == "" {
			title = "Özellikler"
		}
		var items strings.Builder
		for _, item := range d.Items {
			fmt.Fprintf(&items, `
          <div class="group relative overflow-hidden bg-white/80 backdrop-blur-sm rounded-2xl p-8 shadow-lg hover:shadow-2xl transition-all duration-500 transform hover:scale-105 cursor-pointer">
            <div class="absolute inset-0 bg-gradient-to-br from-blue-50 to-purple-50 opacity-0 group-hover:opacity-100 transition-opacity duration-500"></div>
            <div class="relative z-10">
              <div class="w-16 h-16 bg-gradient-to-r from-blue-600 to-purple-600 rounded-2xl flex items-center justify-center text-4xl mb-6 shadow-lg group-hover:scale-110 group-hover:rotate-3 transition-all duration-500">%s</div>
              <h3 class="text-2xl font-bold mb-3 group-hover:text-gray-900 transition-colors">%s</h3>
              <p class="text-gray-600 group-hover:text-gray-700 leading-relaxed transition-colors">%s</p>
            </div>
          </div>
        `, EscapeHTML(item.Icon), EscapeHTML(item.Title), EscapeHTML(item.Desc))
		}
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s">
            <h2 class="text-4xl md:text-6xl font-bold mb-12 %s %s">%s</h2>
            <div class="grid md:grid-cols-3 gap-8">%s</div>
          </section>`,
			paddingClass, bgClass, textClass, alignClass, EscapeHTML(title), items.String())

	case TypeTestimonials:
		d := decodeData[TestimonialsData](b)
		title := d.Title
		if title == "" {
			title = "Yorumlar"
		}
		var items strings.Builder
		for _, item := range d.Items {
			rating := item.Rating
			if rating < 1 {
				rating = 5
			}
			stars := strings.Repeat("⭐", rating)
			fmt.Fprintf(&items, `
            <div class="bg-white/80 backdrop-blur-sm p-8 rounded-2xl shadow-lg hover:shadow-2xl transition-all duration-300 transform hover:scale-105">
              <p class="text-gray-700 text-lg mb-6 italic">"%s"</p>
              <div class="flex items-center justify-between border-t pt-4">
                <span class="font-semibold text-gray-900">%s</span>
                <span class="text-xl">%s</span>
              </div>
            </div>
          `, EscapeHTML(item.Text), EscapeHTML(item.Name), stars)
		}
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s">
            <h2 class="text-4xl font-bold mb-12 %s %s">%s</h2>
            <div class="grid md:grid-cols-2 gap-8">%s</div>
          </section>`,
			paddingClass, bgClass, textClass, alignClass, EscapeHTML(title), items.String())

	case TypePricing:
		d := decodeData[PricingData](b)
		title := d.Title
		if title == "" {
			title = "Fiyatlandırma"
		}
		var plans strings.Builder
		for _, plan := range d.Plans {
			highlightClass := "border-gray-200 bg-white/80"
			if plan.Highlight {
				highlightClass = "border-blue-600 border-2 shadow-2xl scale-105 bg-gradient-to-br from-blue-50 to-purple-50"
			}
			var features strings.Builder
			for _, f := range plan.Features {
				fmt.Fprintf(&features, `<li class="flex items-center gap-3 text-gray-700"><span class="text-green-600 text-xl">✓</span>%s</li>`, EscapeHTML(f))
			}
			fmt.Fprintf(&plans, `
            <div class="border %s backdrop-blur-sm rounded-2xl p-8 hover:shadow-2xl transition-all duration-300 transform hover:scale-105">
              <h3 class="text-2xl font-bold mb-2 text-gray-900">%s</h3>
              <div class="text-4xl font-bold bg-gradient-to-r from-blue-600 to-purple-600 bg-clip-text text-transparent mb-6">%s</div>
              <ul class="space-y-3 mb-8">%s</ul>
              <button class="w-full bg-gradient-to-r from-blue-600 to-purple-600 text-white py-3 rounded-xl font-semibold hover:shadow-lg transition-all duration-300 transform hover:scale-105">Başla</button>
            </div>
          `, highlightClass, EscapeHTML(plan.Name), EscapeHTML(plan.Price), features.String())
		}
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s">
            <h2 class="text-4xl font-bold mb-12 %s %s">%s</h2>
            <div class="grid md:grid-cols-3 gap-8">%s</div>
          </section>`,
			paddingClass, bgClass, textClass, alignClass, EscapeHTML(title), plans.String())

	case TypeFAQ:
		d := decodeData[FAQData](b)
		title := d.Title
		if title == "" {
			title = "Sık Sorulan Sorular"
		}
		var items strings.Builder
		for _, item := range d.Items {
			fmt.Fprintf(&items, `
          <details class="bg-white/80 backdrop-blur-sm rounded-xl p-6 mb-4 shadow-lg hover:shadow-xl transition-all duration-300">
            <summary class="font-semibold text-lg cursor-pointer text-gray-900 hover:text-blue-600 transition-colors">%s</summary>
            <p class="mt-4 text-gray-600 leading-relaxed">%s</p>
          </details>
        `, EscapeHTML(item.Q), EscapeHTML(item.A))
		}
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s">
            <h2 class="text-4xl font-bold mb-12 %s %s">%s</h2>
            <div class="max-w-3xl mx-auto">%s</div>
          </section>`,
			paddingClass, bgClass, textClass, alignClass, EscapeHTML(title), items.String())

	case TypeStats:
		d := decodeData[StatsData](b)
		gradients := []string{
			"from-yellow-400 to-orange-400",
			"from-blue-400 to-cyan-400",
			"from-purple-400 to-pink-400",
			"from-green-400 to-emerald-400",
		}
		var items strings.Builder
		for idx, item := range d.Items {
			gradient := gradients[idx%len(gradients)]
			fmt.Fprintf(&items, `
            <div class="group text-center cursor-pointer">
              <div class="text-5xl font-bold %s mb-3 group-hover:scale-110 transition-transform duration-300">%s</div>
              <div class="text-gray-600 font-medium mb-2">%s</div>
              <div class="w-12 h-0.5 bg-gradient-to-r %s mx-auto rounded-full"></div>
            </div>
          `, textClass, EscapeHTML(item.Number), EscapeHTML(item.Label), gradient)
		}
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s">
            <div class="bg-white/80 backdrop-blur-lg rounded-3xl p-12 border border-white/20 shadow-2xl">
              <div class="grid grid-cols-2 md:grid-cols-4 gap-12">%s</div>
            </div>
          </section>`,
			paddingClass, bgClass, items.String())

	case TypeGallery:
		d := decodeData[GalleryData](b)
		title := d.Title
		if title == "" {
			title = "Galeri"
		}
		var images strings.Builder
		for _, img := range d.Images {
			fmt.Fprintf(&images, `
          <div class="group relative overflow-hidden rounded-2xl shadow-lg hover:shadow-2xl transition-all duration-300 transform hover:scale-105 cursor-pointer">
            <img src="%s" alt="%s" class="w-full h-64 object-cover group-hover:scale-110 transition-transform duration-500"/>
            <div class="absolute inset-0 bg-gradient-to-t from-black/60 to-transparent opacity-0 group-hover:opacity-100 transition-opacity duration-300"></div>
          </div>
        `, escapeAttr(img.Src), escapeAttr(img.Alt))
		}
		return fmt.Sprintf(`
          <section class="container mx-auto px-4 %s %s">
            <h2 class="text-4xl font-bold mb-12 %s %s">%s</h2>
            <div class="grid md:grid-cols-3 gap-6">%s</div>
          </section>`,
			paddingClass, bgClass, textClass, alignClass, EscapeHTML(title), images.String())
	}

	return ""
}
