// Copyright (c) 2026 Tripgate. All rights reserved.

package i18n

// Taxonomy identifies one of the term classification types attached to tours.
type Taxonomy string

const (
	TaxonomyActivity    Taxonomy = "activity"
	TaxonomyDestination Taxonomy = "destination"
	TaxonomyTag         Taxonomy = "tag"
)

// ParseTaxonomy maps a raw string to a known [Taxonomy] type.
func ParseTaxonomy(raw string) (Taxonomy, bool) {
	switch Taxonomy(raw) {
	case TaxonomyActivity, TaxonomyDestination, TaxonomyTag:
		return Taxonomy(raw), true
	default:
		return "", false
	}
}

// dictionary maps locale → taxonomy → term slug → translated display name.
//
// Slugs are stable and locale-invariant, so they are the lookup key; the
// source-language name is never stored here because it already travels with
// the term itself.
var dictionary = map[Locale]map[Taxonomy]map[string]string{
	LocaleZH: {
		TaxonomyActivity: {
			"city-tours":       "城市观光",
			"city-food-tour":   "城市美食之旅",
			"trekking":         "徒步旅行",
			"kayaking":         "皮划艇",
			"cruises":          "游轮之旅",
			"cycling":          "骑行",
			"cooking-classes":  "烹饪课程",
			"motorbike-tours":  "摩托车之旅",
			"photography":      "摄影之旅",
			"cultural-visits":  "文化探访",
			"beach-holidays":   "海滩度假",
			"adventure-travel": "探险旅行",
		},
		TaxonomyDestination: {
			"hanoi":        "河内",
			"ha-long-bay":  "下龙湾",
			"sapa":         "沙坝",
			"ninh-binh":    "宁平",
			"hue":          "顺化",
			"hoi-an":       "会安",
			"da-nang":      "岘港",
			"nha-trang":    "芽庄",
			"dalat":        "大叻",
			"ho-chi-minh":  "胡志明市",
			"mekong-delta": "湄公河三角洲",
			"phu-quoc":     "富国岛",
		},
		TaxonomyTag: {
			"family-friendly": "适合家庭",
			"luxury":          "豪华体验",
			"budget":          "经济实惠",
			"private-tour":    "私人定制",
			"small-group":     "小团出行",
			"best-seller":     "热卖行程",
		},
	},
}

// DisplayName resolves the localized display name for a term slug.
//
// It reports false when no dictionary entry exists for the locale, taxonomy,
// or slug — absence is a normal no-op fallback to the source name, never an
// error.
func DisplayName(locale Locale, taxonomy Taxonomy, slug string) (string, bool) {
	tables, ok := dictionary[locale]
	if !ok {
		return "", false
	}

	table, ok := tables[taxonomy]
	if !ok {
		return "", false
	}

	name, ok := table[slug]
	return name, ok
}
