package main

// User-facing toast/status strings per UI language. The selected language
// is persisted and re-applied on the next start.
var messages = map[string]map[string]string{
	"en": {
		"login.ok":       "Login successful!",
		"login.fail":     "Login failed!",
		"product.added":  "Product added successfully!",
		"product.addErr": "Error adding product!",
		"product.upd":    "Product updated successfully!",
		"product.updErr": "Error updating product!",
		"product.del":    "Product deleted successfully!",
		"product.delErr": "Error deleting product!",
		"cart.added":     "Product added to cart!",
		"loading":        "Loading...",
		"empty":          "No records found.",
	},
	"tr": {
		"login.ok":       "Giris basarili!",
		"login.fail":     "Giris basarisiz!",
		"product.added":  "Urun basariyla eklendi!",
		"product.addErr": "Urun eklenirken hata olustu!",
		"product.upd":    "Urun basariyla guncellendi!",
		"product.updErr": "Urun guncellenirken hata olustu!",
		"product.del":    "Urun basariyla silindi!",
		"product.delErr": "Urun silinirken hata olustu!",
		"cart.added":     "Urun sepete eklendi!",
		"loading":        "Yukleniyor...",
		"empty":          "Kayit bulunamadi.",
	},
}

func (a *app) msg(key string) string {
	if m, ok := messages[a.lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	return messages["en"][key]
}
