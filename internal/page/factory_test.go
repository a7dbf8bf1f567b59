package page

import "testing"

func TestNewBlockHeroUsesPageTitle(t *testing.T) {
	b := NewBlock(TypeHero, "Kurslarımız")
	if b.Data["heading"] != "Kurslarımız" {
		t.Fatalf("heading = %v", b.Data["heading"])
	}
	b = NewBlock(TypeHero, "")
	if b.Data["heading"] != "Başlık" {
		t.Fatalf("fallback heading = %v", b.Data["heading"])
	}
	if b.Style == nil || b.Style.Padding != "py-20" || b.Style.TextColor != "text-white" {
		t.Fatalf("hero style = %+v", b.Style)
	}
}

func TestNewBlockDefaultsPerType(t *testing.T) {
	for _, typ := range []string{
		TypeHero, TypeText, TypeTwoColumn, TypeImage, TypeCTA, TypeContactForm,
		TypeFeatures, TypeTestimonials, TypePricing, TypeFAQ, TypeStats, TypeGallery,
	} {
		b := NewBlock(typ, "")
		if b.ID == "" {
			t.Errorf("%s: empty id", typ)
		}
		if b.Type != typ {
			t.Errorf("%s: type = %s", typ, b.Type)
		}
		if b.Data == nil {
			t.Errorf("%s: nil data", typ)
		}
		if b.Style == nil || b.Style.BgColor == "" || b.Style.Padding == "" {
			t.Errorf("%s: incomplete style %+v", typ, b.Style)
		}
	}
}

func TestNewBlockUnknownType(t *testing.T) {
	b := NewBlock("video", "")
	if len(b.Data) != 0 {
		t.Fatalf("unknown type should carry empty data: %v", b.Data)
	}
	if b.Style == nil || b.Style.BgColor != "bg-white" {
		t.Fatalf("unknown type should keep base style: %+v", b.Style)
	}
}

func TestNewBlockIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewBlockID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestApplyTemplateKnownNames(t *testing.T) {
	for _, name := range []string{"hero", "kurslar-sayfa", "egitmenler-sayfa", "hakkimizda-sayfa", "iletisim-sayfa"} {
		blocks, content := ApplyTemplate(name, "")
		if len(blocks) == 0 {
			t.Errorf("%s: no blocks", name)
		}
		if content != "" {
			t.Errorf("%s: unexpected raw content", name)
		}
	}
	for _, name := range []string{"two-column", "contact-form"} {
		blocks, content := ApplyTemplate(name, "")
		if blocks != nil || content == "" {
			t.Errorf("%s: expected raw content only", name)
		}
	}
	if blocks, content := ApplyTemplate("none", ""); blocks != nil || content != "" {
		t.Error("none should be a no-op")
	}
}
