package devserver

// Fixture payloads use the backend's loose shapes on purpose: numeric
// fields appear both as numbers and quoted strings, image paths both
// relative and absolute.

var fixtureSuppliers = []map[string]any{
	{
		"id":            1,
		"business_name": "Atlas Crafts",
		"type":          "merchant",
		"picture":       "storage/suppliers/atlas.png",
		"cover_picture": "suppliers/atlas-cover.png",
		"verified":      true,
		"location":      "Algiers",
		"product_count": 2,
		"reviews": []map[string]any{
			{"id": 11, "author_name": "Sara", "rating": 5, "comment": "Fast shipping"},
			{"id": 12, "author_name": "Yacine", "rating": 4, "comment": "Good quality"},
		},
	},
	{
		"id":            2,
		"business_name": "Oran Textiles",
		"type":          "workshop",
		"picture":       "public/suppliers/oran.png",
		"verified":      false,
		"location":      "Oran",
		"product_count": "1",
		"reviews":       []map[string]any{},
	},
	{
		"id":            3,
		"business_name": "Sahara Imports",
		"type":          "importer",
		"picture":       "https://cdn.example.com/sahara.png",
		"verified":      true,
		"location":      "Constantine",
		"product_count": 1,
	},
}

var fixtureProducts = []map[string]any{
	{
		"id":               101,
		"name":             "Handwoven Rug",
		"price":            "4500.00",
		"original_price":   6000,
		"image":            "storage/products/rug.jpg",
		"quantity":         8,
		"minimum_quantity": 1,
		"category":         "Home",
		"featured":         true,
		"supplier_id":      1,
		"pictures": []map[string]any{
			{"id": 1, "picture": "products/rug-front.jpg"},
			{"id": 2, "picture": "products/rug-back.jpg"},
		},
		"reviews": []map[string]any{
			{"id": 21, "author_name": "Nadia", "rating": 5, "comment": "Beautiful"},
			{"id": 22, "author_name": "Karim", "rating": 3, "comment": "Colors differ"},
		},
	},
	{
		"id":               102,
		"name":             "Ceramic Vase",
		"price":            1200,
		"original_price":   1200,
		"image":            "products/vase.jpg",
		"quantity":         0,
		"minimum_quantity": 1,
		"category":         "Home",
		"featured":         false,
		"supplier_id":      1,
	},
	{
		"id":               103,
		"name":             "Raw Wool Bundle",
		"price":            800,
		"original_price":   "not-a-number",
		"image":            "storage/products/wool.jpg",
		"quantity":         "40",
		"minimum_quantity": 5,
		"category":         "Materials",
		"featured":         false,
		"supplier_id":      2,
		"reviews": []map[string]any{
			{"id": 23, "author_name": "Imene", "rating": 4, "comment": "As described"},
		},
	},
	{
		"id":               104,
		"name":             "Imported Espresso Machine",
		"price":            52000,
		"original_price":   58000,
		"image":            "https://cdn.example.com/espresso.jpg",
		"quantity":         3,
		"minimum_quantity": 1,
		"category":         "Kitchen",
		"featured":         true,
		"supplier_id":      3,
	},
}

// supplierForProduct mirrors the supplier_id column of fixtureProducts.
func supplierForProduct(productID string) string {
	switch productID {
	case "101", "102":
		return "1"
	case "103":
		return "2"
	case "104":
		return "3"
	default:
		return "1"
	}
}

var fixtureWilayas = []map[string]any{
	{"id": 16, "name": "Alger"},
	{"id": 31, "name": "Oran"},
	{"id": 25, "name": "Constantine"},
}

var fixtureCommunes = map[int][]map[string]any{
	16: {
		{"id": 1601, "wilaya_id": 16, "name": "Bab El Oued"},
		{"id": 1602, "wilaya_id": 16, "name": "Hydra"},
		{"id": 1603, "wilaya_id": 16, "name": "El Harrach"},
	},
	31: {
		{"id": 3101, "wilaya_id": 31, "name": "Es Senia"},
		{"id": 3102, "wilaya_id": 31, "name": "Bir El Djir"},
	},
	25: {
		{"id": 2501, "wilaya_id": 25, "name": "El Khroub"},
	},
}
