package structs

// ProductCategories is the fixed set of categories a product may belong to.
var ProductCategories = []string{
	"wine-Champagne glasses and tumblers",
	"whiskey and pint glasses",
	"tumblers",
	"button art",
	"christmas ornaments",
	"other",
}

// ProductTags is the fixed set of tags a product may carry.
var ProductTags = []string{
	"wedding",
	"birthday",
	"travel",
	"gifts",
	"baby",
	"pet",
	"cancer",
	"christmas",
	"bridal shower",
	"girls trip",
	"buttons",
	"glass etching",
	"color-changing",
	"love",
	"meal prep",
	"personalized",
	"letter",
	"name",
	"couple",
	"custom",
	"family",
	"easy plant",
	"monogram",
	"happy",
	"mom",
	"dad",
	"coffee",
	"mother's day",
	"father's day",
	"milestone",
	"vintage",
	"retirement",
	"holiday",
	"pride",
}

var (
	categorySet = toSet(ProductCategories)
	tagSet      = toSet(ProductTags)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// IsProductCategory reports whether category is one of ProductCategories.
func IsProductCategory(category string) bool {
	_, ok := categorySet[category]
	return ok
}

// IsProductTag reports whether tag is one of ProductTags.
func IsProductTag(tag string) bool {
	_, ok := tagSet[tag]
	return ok
}
