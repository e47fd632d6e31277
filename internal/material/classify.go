package material

import "regexp"

// classifyRule maps a name pattern to a category. Rules are evaluated in
// order and the first match wins, so more specific patterns must come
// before broader ones (chapilla before marco).
type classifyRule struct {
	pattern  *regexp.Regexp
	category Category
}

// defaultRules recognizes the names the shop actually types, in Spanish and
// the occasional English. Matching is case-insensitive on the raw name.
var defaultRules = []classifyRule{
	{regexp.MustCompile(`(?i)vidrio|espejo|glass|mirror`), CategoryGlass},
	{regexp.MustCompile(`(?i)mdf|triplex|respaldo|madera|backing|wood`), CategoryBacking},
	{regexp.MustCompile(`(?i)paspart|passepartout|cart[oó]n|matboard`), CategoryMatboard},
	{regexp.MustCompile(`(?i)chapilla|veneer`), CategoryVeneer},
	{regexp.MustCompile(`(?i)foam|icopor|styrofoam`), CategoryFoam},
	{regexp.MustCompile(`(?i)tela|lienzo|lino|fabric|canvas|linen`), CategoryFabric},
	{regexp.MustCompile(`(?i)marco|moldura|frame|mo[u]?lding`), CategoryFrame},
}

// Classifier infers a category from a material name.
type Classifier struct {
	rules []classifyRule
}

// NewClassifier returns the shop's default name classifier.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules}
}

// Classify returns the category of the first matching rule, or
// CategoryOther when nothing matches.
func (c *Classifier) Classify(name string) Category {
	for _, r := range c.rules {
		if r.pattern.MatchString(name) {
			return r.category
		}
	}

	return CategoryOther
}
