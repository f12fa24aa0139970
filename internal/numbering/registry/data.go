package registry

// Default returns the hand-curated territory table. Order matters: when
// several territories share a calling code, the first one listed here is the
// one a first-match lookup resolves to.
//
// Patterns describe national-significant numbers as users type them and are
// an approximation of the real numbering plans.
func Default() []CountryRecord {
	out := make([]CountryRecord, len(defaultTable))
	copy(out, defaultTable)
	return out
}

func rec(code, name, callingCode, pattern, example string, trunk Trunk) CountryRecord {
	return CountryRecord{
		Code:        code,
		Name:        name,
		CallingCode: callingCode,
		Pattern:     pattern,
		Example:     example,
		Glyph:       flag(code),
		Trunk:       trunk,
	}
}

var defaultTable = []CountryRecord{
	// +1 North American Numbering Plan
	rec("US", "United States", "+1", `[2-9]\d{2}[2-9]\d{6}`, "2015550123", TrunkNone),
	rec("CA", "Canada", "+1", `[2-9]\d{2}[2-9]\d{6}`, "5062345678", TrunkNone),
	rec("PR", "Puerto Rico", "+1", `(?:787|939)[2-9]\d{6}`, "7872345678", TrunkNone),
	rec("DO", "Dominican Republic", "+1", `8[024]9[2-9]\d{6}`, "8092345678", TrunkNone),
	rec("BS", "Bahamas", "+1", `242[2-9]\d{6}`, "2423591234", TrunkNone),
	rec("AS", "American Samoa", "+1684", `[27]\d{6}`, "7331234", TrunkNone),

	// +7
	rec("RU", "Russia", "+7", `[3-9]\d{9}`, "9123456789", TrunkNone),
	rec("KZ", "Kazakhstan", "+7", `7\d{9}`, "7710009998", TrunkNone),

	// Europe
	rec("FR", "France", "+33", `0[1-9]\d{8}`, "0612345678", TrunkKeep),
	rec("MC", "Monaco", "+377", `[3489]\d{7}|6\d{8}`, "612345678", TrunkNone),
	rec("GB", "United Kingdom", "+44", `7\d{9}|[1-3]\d{8,9}`, "7400123456", TrunkDrop),
	rec("GG", "Guernsey", "+44", `7(?:781|839|911)\d{6}|1481\d{6}`, "7781123456", TrunkDrop),
	rec("JE", "Jersey", "+44", `7(?:509|700|797|829|937)\d{6}|1534\d{6}`, "7797712345", TrunkDrop),
	rec("IM", "Isle of Man", "+44", `7(?:4576|624)\d{5,6}|1624\d{6}`, "7624123456", TrunkDrop),
	rec("IE", "Ireland", "+353", `8[35-9]\d{7}|[1-9]\d{7,8}`, "850123456", TrunkDrop),
	rec("DE", "Germany", "+49", `1[5-7]\d{8,9}|[2-9]\d{5,10}`, "15123456789", TrunkDrop),
	rec("AT", "Austria", "+43", `6[5-9]\d{7,10}|[1-57]\d{3,12}`, "664123456", TrunkDrop),
	rec("CH", "Switzerland", "+41", `7[5-9]\d{7}|[2-6]\d{8}`, "781234567", TrunkDrop),
	rec("LU", "Luxembourg", "+352", `6[269]1\d{6}|[2-9]\d{4,10}`, "628123456", TrunkNone),
	rec("NL", "Netherlands", "+31", `6\d{8}|[1-57-9]\d{8}`, "612345678", TrunkDrop),
	rec("BE", "Belgium", "+32", `4[5-9]\d{7}|[1-9]\d{7}`, "470123456", TrunkDrop),
	rec("ES", "Spain", "+34", `[6-9]\d{8}`, "612345678", TrunkNone),
	rec("PT", "Portugal", "+351", `9[1236]\d{7}|2\d{8}`, "912345678", TrunkNone),
	rec("IT", "Italy", "+39", `3\d{8,9}|0\d{5,10}`, "3123456789", TrunkKeep),
	rec("GR", "Greece", "+30", `69\d{8}|2\d{9}`, "6912345678", TrunkNone),
	rec("SE", "Sweden", "+46", `7[02369]\d{7}|[1-689]\d{6,8}`, "701234567", TrunkDrop),
	rec("NO", "Norway", "+47", `[2-9]\d{7}`, "40612345", TrunkNone),
	rec("SJ", "Svalbard and Jan Mayen", "+47", `79\d{6}`, "79123456", TrunkNone),
	rec("DK", "Denmark", "+45", `[2-9]\d{7}`, "32123456", TrunkNone),
	rec("FI", "Finland", "+358", `4\d{5,11}|50\d{4,8}|[1-35-9]\d{4,10}`, "412345678", TrunkDrop),
	rec("AX", "Åland Islands", "+358", `4\d{5,11}|18\d{5,7}`, "412345678", TrunkDrop),
	rec("PL", "Poland", "+48", `[1-9]\d{8}`, "512345678", TrunkNone),
	rec("CZ", "Czechia", "+420", `[2-9]\d{8}`, "601123456", TrunkNone),
	rec("HU", "Hungary", "+36", `[237]0\d{7}|[1-9]\d{7}`, "201234567", TrunkNone),
	rec("RO", "Romania", "+40", `7\d{8}|[23]\d{8}`, "712034567", TrunkDrop),
	rec("BG", "Bulgaria", "+359", `8[7-9]\d{7}|[2-9]\d{6,8}`, "887123456", TrunkDrop),
	rec("HR", "Croatia", "+385", `9[12589]\d{6,7}|[1-7]\d{7,8}`, "921234567", TrunkDrop),
	rec("RS", "Serbia", "+381", `6\d{7,8}|[1-3]\d{7,8}`, "601234567", TrunkDrop),
	rec("XK", "Kosovo", "+383", `4[3-9]\d{6}|[23]\d{7}`, "43201234", TrunkDrop),
	rec("UA", "Ukraine", "+380", `[3-9]\d{8}`, "501234567", TrunkDrop),
	rec("TR", "Türkiye", "+90", `5\d{9}|[2-4]\d{9}`, "5012345678", TrunkDrop),

	// Middle East and Africa
	rec("IL", "Israel", "+972", `5\d{8}|[2-489]\d{7}`, "502345678", TrunkDrop),
	rec("AE", "United Arab Emirates", "+971", `5[024-68]\d{7}|[2-79]\d{7}`, "501234567", TrunkDrop),
	rec("SA", "Saudi Arabia", "+966", `5\d{8}|1\d{7}`, "512345678", TrunkDrop),
	rec("EG", "Egypt", "+20", `1[0-25]\d{8}|[2-9]\d{7,8}`, "1001234567", TrunkDrop),
	rec("MA", "Morocco", "+212", `[67]\d{8}`, "600691801", TrunkDrop),
	rec("EH", "Western Sahara", "+212", `5288\d{5}|[67]\d{8}`, "528812345", TrunkDrop),
	rec("DZ", "Algeria", "+213", `[5-7]\d{8}|[2-4]\d{7}`, "551234567", TrunkDrop),
	rec("TN", "Tunisia", "+216", `[2-9]\d{7}`, "20123456", TrunkNone),
	rec("SN", "Senegal", "+221", `7[05-8]\d{7}|3[03]\d{7}`, "701234567", TrunkNone),
	rec("CI", "Côte d'Ivoire", "+225", `0[157]\d{8}|2[17]\d{8}`, "0712345678", TrunkKeep),
	rec("NG", "Nigeria", "+234", `[7-9][01]\d{8}`, "8021234567", TrunkDrop),
	rec("KE", "Kenya", "+254", `[17]\d{8}`, "712123456", TrunkDrop),
	rec("ZA", "South Africa", "+27", `[6-8]\d{8}|[1-5]\d{8}`, "711234567", TrunkDrop),
	rec("KM", "Comoros", "+269", `[34]\d{6}|7\d{6}`, "3212345", TrunkNone),
	rec("RE", "Réunion", "+262", `(?:262|692|693)\d{6}`, "692123456", TrunkDrop),
	rec("YT", "Mayotte", "+262", `(?:269|639)\d{6}`, "639012345", TrunkDrop),

	// Asia and Oceania
	rec("IN", "India", "+91", `[6-9]\d{9}`, "8123456789", TrunkDrop),
	rec("PK", "Pakistan", "+92", `3\d{9}`, "3012345678", TrunkDrop),
	rec("CN", "China", "+86", `1[3-9]\d{9}`, "13123456789", TrunkNone),
	rec("HK", "Hong Kong", "+852", `[5-9]\d{7}`, "51234567", TrunkNone),
	rec("JP", "Japan", "+81", `[789]0\d{8}|[1-9]\d{8}`, "9012345678", TrunkDrop),
	rec("KR", "South Korea", "+82", `1\d{8,9}|[2-6]\d{7,9}`, "1020000000", TrunkDrop),
	rec("MN", "Mongolia", "+976", `[89]\d{7}`, "88123456", TrunkNone),
	rec("SG", "Singapore", "+65", `[89]\d{7}|6\d{7}`, "81234567", TrunkNone),
	rec("MY", "Malaysia", "+60", `1\d{8,9}`, "123456789", TrunkDrop),
	rec("TH", "Thailand", "+66", `[689]\d{8}`, "812345678", TrunkDrop),
	rec("VN", "Vietnam", "+84", `[35789]\d{8}`, "912345678", TrunkDrop),
	rec("ID", "Indonesia", "+62", `8\d{8,11}`, "812345678", TrunkDrop),
	rec("PH", "Philippines", "+63", `9\d{9}`, "9051234567", TrunkDrop),
	rec("AU", "Australia", "+61", `4\d{8}|[2378]\d{8}`, "412345678", TrunkDrop),
	rec("CX", "Christmas Island", "+61", `89164\d{4}|4\d{8}`, "891641234", TrunkDrop),
	rec("CC", "Cocos (Keeling) Islands", "+61", `89162\d{4}|4\d{8}`, "891621234", TrunkDrop),
	rec("NZ", "New Zealand", "+64", `2\d{7,9}|[3-9]\d{7}`, "211234567", TrunkDrop),
	rec("WS", "Samoa", "+685", `7[1-9]\d{5}|[2-6]\d{4}`, "7212345", TrunkNone),

	// Latin America
	rec("BR", "Brazil", "+55", `[1-9]{2}9\d{8}|[1-9]{2}[2-5]\d{7}`, "11961234567", TrunkNone),
	rec("MX", "Mexico", "+52", `[1-9]\d{9}`, "2221234567", TrunkNone),
	rec("AR", "Argentina", "+54", `9\d{10}|[1-3]\d{9}`, "91123456789", TrunkNone),
	rec("CO", "Colombia", "+57", `3\d{9}|60\d{8}`, "3211234567", TrunkNone),
	rec("CL", "Chile", "+56", `9\d{8}|2\d{8}`, "961234567", TrunkNone),
	rec("PE", "Peru", "+51", `9\d{8}|1\d{7}`, "912345678", TrunkNone),

	// French overseas, sharing +590
	rec("GP", "Guadeloupe", "+590", `(?:590|690)\d{6}`, "690001234", TrunkDrop),
	rec("BL", "Saint Barthélemy", "+590", `(?:590|690)\d{6}`, "690001234", TrunkDrop),
	rec("MF", "Saint Martin (French part)", "+590", `(?:590|690)\d{6}`, "690001234", TrunkDrop),
}
