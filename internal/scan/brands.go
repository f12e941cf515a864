package scan

import "regexp"

// BrandSignature maps a User-Agent pattern to a device model label.
// Patterns are matched against the lower-cased User-Agent.
type BrandSignature struct {
	Brand   string
	Pattern *regexp.Regexp
	Model   string
}

// DefaultBrandSignatures returns the built-in brand table. Order is
// significant: the first matching entry wins.
func DefaultBrandSignatures() []BrandSignature {
	return []BrandSignature{
		{Brand: "Apple", Pattern: regexp.MustCompile(`iphone|ipad|macintosh`), Model: "Apple Device"},
		{Brand: "Samsung", Pattern: regexp.MustCompile(`sm-\w+|gt-\w+|samsung`), Model: "Samsung Device"},
		{Brand: "Xiaomi", Pattern: regexp.MustCompile(`mi \w+|redmi|xiaomi`), Model: "Xiaomi Device"},
		{Brand: "OnePlus", Pattern: regexp.MustCompile(`oneplus`), Model: "OnePlus Device"},
		{Brand: "Google", Pattern: regexp.MustCompile(`pixel`), Model: "Google Pixel"},
		{Brand: "Huawei", Pattern: regexp.MustCompile(`huawei|honor`), Model: "Huawei Device"},
		{Brand: "Oppo", Pattern: regexp.MustCompile(`oppo|realme`), Model: "Oppo Device"},
		{Brand: "Vivo", Pattern: regexp.MustCompile(`vivo`), Model: "Vivo Device"},
		{Brand: "Microsoft", Pattern: regexp.MustCompile(`windows phone`), Model: "Windows Phone"},
		{Brand: "Sony", Pattern: regexp.MustCompile(`xperia`), Model: "Sony Xperia"},
		{Brand: "Motorola", Pattern: regexp.MustCompile(`moto \w+`), Model: "Motorola Device"},
	}
}
