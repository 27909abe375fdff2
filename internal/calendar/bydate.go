package calendar

import (
	"slices"
	"strings"
	"time"

	"github.com/goodsign/monday"

	"github.com/gorewood/wikimark/internal/dialect"
)

// ByDateLayout is the default heading layout of ByDate.
const ByDateLayout = "2006-01-02 (Mon)"

// ByDate lists the newest days distinct dates, newest first. Each date is a
// level-two heading followed by one bullet per page, linked in dialect d.
// The heading uses opts.DateLayout.
func ByDate(entries []Entry, days int, opts Options, d dialect.Dialect) string {
	loc := opts.location()
	byDay := make(map[string][]string)
	dates := make(map[string]time.Time)
	for _, e := range entries {
		t := e.Date.In(loc)
		key := dateKey(t)
		byDay[key] = append(byDay[key], e.Title)
		dates[key] = day(t)
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	slices.Reverse(keys)
	if days >= 0 && len(keys) > days {
		keys = keys[:days]
	}

	var b strings.Builder
	for _, key := range keys {
		b.WriteString("## ")
		b.WriteString(monday.Format(dates[key], opts.DateLayout, opts.Locale))
		b.WriteString("\n\n")
		titles := byDay[key]
		slices.Sort(titles)
		for _, title := range titles {
			b.WriteString("* ")
			b.WriteString(d.WikiLink(title, title))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

var locales = map[string]monday.Locale{
	"en":    monday.LocaleEnUS,
	"en_us": monday.LocaleEnUS,
	"en_gb": monday.LocaleEnGB,
	"de":    monday.LocaleDeDE,
	"de_de": monday.LocaleDeDE,
	"fr":    monday.LocaleFrFR,
	"fr_fr": monday.LocaleFrFR,
	"fr_ca": monday.LocaleFrCA,
	"es":    monday.LocaleEsES,
	"es_es": monday.LocaleEsES,
	"it":    monday.LocaleItIT,
	"it_it": monday.LocaleItIT,
	"pt":    monday.LocalePtPT,
	"pt_pt": monday.LocalePtPT,
	"pt_br": monday.LocalePtBR,
	"nl":    monday.LocaleNlNL,
	"nl_nl": monday.LocaleNlNL,
	"nl_be": monday.LocaleNlBE,
	"ru":    monday.LocaleRuRU,
	"ru_ru": monday.LocaleRuRU,
	"pl":    monday.LocalePlPL,
	"pl_pl": monday.LocalePlPL,
	"da":    monday.LocaleDaDK,
	"da_dk": monday.LocaleDaDK,
	"fi":    monday.LocaleFiFI,
	"fi_fi": monday.LocaleFiFI,
	"sv":    monday.LocaleSvSE,
	"sv_se": monday.LocaleSvSE,
	"nb":    monday.LocaleNbNO,
	"nb_no": monday.LocaleNbNO,
	"ja":    monday.LocaleJaJP,
	"ja_jp": monday.LocaleJaJP,
	"zh":    monday.LocaleZhCN,
	"zh_cn": monday.LocaleZhCN,
	"ko":    monday.LocaleKoKR,
	"ko_kr": monday.LocaleKoKR,
}

// LocaleFor maps a locale name such as "de", "en-GB" or "pt_BR" to a label
// locale. Unknown names report false and fall back to US English.
func LocaleFor(name string) (monday.Locale, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	if key == "" {
		return monday.LocaleEnUS, true
	}
	if l, ok := locales[key]; ok {
		return l, true
	}
	return monday.LocaleEnUS, false
}
