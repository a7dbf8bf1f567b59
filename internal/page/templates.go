package page

// 预置页面模板。编辑器里选择模板会整体替换当前块序列；
// 旧版的 two-column / contact-form 模板只产出自由 HTML，不带块。

// TemplateNames 返回可用模板名，顺序即编辑器下拉框顺序。
func TemplateNames() []string {
	return []string{"hero", "kurslar-sayfa", "egitmenler-sayfa", "hakkimizda-sayfa", "iletisim-sayfa", "two-column", "contact-form"}
}

// ApplyTemplate 按模板名生成块序列和自由 HTML 内容二者之一。
// 未知模板名（含 "none"）两者都为空。
func ApplyTemplate(name, title string) (blocks []Block, content string) {
	heroHeading := func(fallback string) string {
		if title != "" {
			return title
		}
		return fallback
	}
	gradientHero := &Style{BgColor: "bg-gradient-to-r from-blue-600 to-purple-600", TextColor: "text-white", Padding: "py-20", Alignment: "center"}
	plain := func(bg, pad, align string) *Style {
		return &Style{BgColor: bg, TextColor: "text-gray-900", Padding: pad, Alignment: align}
	}

	switch name {
	case "hero":
		return []Block{{
			ID:    NewBlockID(),
			Type:  TypeHero,
			Data:  map[string]any{"heading": heroHeading("Başlık"), "sub": "Kısa açıklama", "bgImage": ""},
			Style: gradientHero,
		}}, ""

	case "kurslar-sayfa":
		return []Block{
			{
				ID:    NewBlockID(),
				Type:  TypeHero,
				Data:  map[string]any{"heading": "Kurslarımız", "sub": "Uzman eğitmenlerden binlerce kurs ve öğrenme deneyimi"},
				Style: gradientHero,
			},
			{
				ID:   NewBlockID(),
				Type: TypeStats,
				Data: map[string]any{"items": []any{
					map[string]any{"number": "180+", "label": "Online Kurs"},
					map[string]any{"number": "67+", "label": "Uzman Eğitmen"},
					map[string]any{"number": "12500+", "label": "Aktif Öğrenci"},
					map[string]any{"number": "4.7", "label": "Ortalama Puan"},
				}},
				Style: plain("bg-white", "py-12", "center"),
			},
			{
				ID:    NewBlockID(),
				Type:  TypeText,
				Data:  map[string]any{"html": `<h2 class="text-3xl font-bold mb-6">Popüler Kurslar</h2><p class="text-gray-600">En çok tercih edilen kurslarımıza göz atın</p>`},
				Style: plain("bg-gray-50", "py-12", "center"),
			},
		}, ""

	case "egitmenler-sayfa":
		return []Block{
			{
				ID:    NewBlockID(),
				Type:  TypeHero,
				Data:  map[string]any{"heading": "Eğitmenlerimiz", "sub": "Alanında uzman eğitmenlerden öğrenin"},
				Style: &Style{BgColor: "bg-gradient-to-r from-purple-600 to-pink-600", TextColor: "text-white", Padding: "py-20", Alignment: "center"},
			},
			{
				ID:   NewBlockID(),
				Type: TypeFeatures,
				Data: map[string]any{
					"title": "Neden Bizim Eğitmenler?",
					"items": []any{
						map[string]any{"icon": "🎓", "title": "Uzman Kadro", "desc": "Sektörde 10+ yıl deneyimli eğitmenler"},
						map[string]any{"icon": "⭐", "title": "Yüksek Puan", "desc": "4.8+ ortalama öğrenci puanı"},
						map[string]any{"icon": "🤝", "title": "Destek", "desc": "7/24 öğrenci desteği"},
					},
				},
				Style: plain("bg-white", "py-12", "center"),
			},
			{
				ID:    NewBlockID(),
				Type:  TypeText,
				Data:  map[string]any{"html": `<h2 class="text-3xl font-bold mb-6">Tüm Eğitmenler</h2>`},
				Style: plain("bg-gray-50", "py-12", "center"),
			},
		}, ""

	case "hakkimizda-sayfa":
		return []Block{
			{
				ID:    NewBlockID(),
				Type:  TypeHero,
				Data:  map[string]any{"heading": "Hakkımızda", "sub": "Türkiye'nin en kapsamlı online eğitim platformu"},
				Style: gradientHero,
			},
			{
				ID:   NewBlockID(),
				Type: TypeTwoColumn,
				Data: map[string]any{
					"left":  `<h3 class="text-2xl font-bold mb-4">Misyonumuz</h3><p class="text-gray-700">Yapay zeka destekli kişiselleştirilmiş öğrenme deneyimi ile binlerce kurs ve uzman eğitmenlerden öğrenin.</p>`,
					"right": `<h3 class="text-2xl font-bold mb-4">Vizyonumuz</h3><p class="text-gray-700">Herkesin kaliteli eğitime erişebileceği bir dünya yaratmak.</p>`,
				},
				Style: plain("bg-white", "py-12", "left"),
			},
			{
				ID:   NewBlockID(),
				Type: TypeStats,
				Data: map[string]any{"items": []any{
					map[string]any{"number": "180+", "label": "Kurs"},
					map[string]any{"number": "67+", "label": "Eğitmen"},
					map[string]any{"number": "12500+", "label": "Öğrenci"},
					map[string]any{"number": "4.7", "label": "Puan"},
				}},
				Style: &Style{BgColor: "bg-gradient-to-r from-blue-600 to-purple-600", TextColor: "text-white", Padding: "py-12", Alignment: "center"},
			},
		}, ""

	case "iletisim-sayfa":
		return []Block{
			{
				ID:    NewBlockID(),
				Type:  TypeHero,
				Data:  map[string]any{"heading": "İletişim", "sub": "Sorularınız için bize ulaşın"},
				Style: gradientHero,
			},
			{
				ID:   NewBlockID(),
				Type: TypeTwoColumn,
				Data: map[string]any{
					"left":  `<h3 class="text-2xl font-bold mb-4">İletişim Bilgileri</h3><p class="mb-2"><strong>E-posta:</strong> info@egitimplatformu.com</p><p class="mb-2"><strong>Telefon:</strong> +90 (212) 123 45 67</p><p><strong>Adres:</strong> İstanbul, Türkiye</p>`,
					"right": `<div class="border rounded-lg p-6"><h4 class="font-semibold mb-4">Bize Yazın</h4></div>`,
				},
				Style: plain("bg-white", "py-12", "left"),
			},
			{
				ID:    NewBlockID(),
				Type:  TypeContactForm,
				Data:  map[string]any{"title": "Hızlı İletişim Formu"},
				Style: plain("bg-gray-50", "py-12", "center"),
			},
		}, ""

	case "two-column":
		heading := heroHeading("Başlık")
		return nil, `<section class="container mx-auto px-4 py-12">
  <div class="grid md:grid-cols-2 gap-8 items-start">
    <div>
      <h2 class="text-2xl font-semibold">` + EscapeHTML(heading) + `</h2>
      <p class="text-gray-600">Sol sütun metni burada.</p>
    </div>
    <div>
      <div class="prose">Sağ sütun içeriği burada.</div>
    </div>
  </div>
</section>`

	case "contact-form":
		return nil, `<section class="container mx-auto px-4 py-12">
  <h2 class="text-2xl font-semibold mb-4">İletişim</h2>
  <form class="grid gap-4 max-w-xl">
    <input placeholder="İsim" class="border px-3 py-2 rounded" />
    <input placeholder="E-posta" class="border px-3 py-2 rounded" />
    <textarea placeholder="Mesaj" class="border px-3 py-2 rounded h-32"></textarea>
    <button class="bg-blue-600 text-white px-4 py-2 rounded">Gönder</button>
  </form>
</section>`
	}

	return nil, ""
}
