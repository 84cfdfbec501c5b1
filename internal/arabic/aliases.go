package arabic

// alias maps a colloquial short form to its canonical full form. Entries are
// matched against normalized tokens in table order; the first match wins.
type alias struct {
	short string
	full  string
}

// rawAliases is the source table. Both sides are normalized once at package
// initialization so matching is a plain string compare.
var rawAliases = []alias{
	// Football players
	{"فيتي", "فينيسيوس"},
	{"فيني", "فينيسيوس"},
	{"كريس", "كريستيانو رونالدو"},
	{"رونالدو", "كريستيانو رونالدو"},
	{"ميسي", "ليونيل ميسي"},
	{"كيليان", "مبابي"},
	{"نيمار", "نيمار دا سيلفا"},
	{"بنزيما", "كريم بنزيما"},
	{"صلاح", "محمد صلاح"},
	{"مودريتش", "لوكا مودريتش"},
	// Teams
	{"الريال", "ريال مدريد"},
	{"البارسا", "برشلونة"},
	{"الاتحاد", "اتحاد جدة"},
	{"الهلال", "الهلال السعودي"},
	{"النصر", "النصر السعودي"},
	// Common terms
	{"جزاء", "ركلة جزاء"},
	{"احتجاج", "اعتراض"},
	{"فيتو", "اعتراض"},
	{"بطاقة", "كرت"},
	{"حمراء", "احمر"},
	{"صفراء", "اصفر"},
}

var aliasTable = buildAliasTable()

func buildAliasTable() []alias {
	out := make([]alias, len(rawAliases))
	for i, a := range rawAliases {
		out[i] = alias{short: Normalize(a.short), full: Normalize(a.full)}
	}
	return out
}
