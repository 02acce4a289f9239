package soundmap

var consonants = map[string][]string{
	"HH":  {"ㅎ"},
	"K":   {"ㅋ", "ㅋㅡ", "ㄱ"},
	"F":   {"ㅍ"},
	"S":   {"ㅅ", "ㅅㅡ"},
	"BR":  {"ㅂㅡㄹ"},
	"N":   {"ㄴ", "ㅇ"},
	"P":   {"ㅍ"},
	"TS":  {"ㅈ"},
	"B":   {"ㅂ"},
	"G":   {"ㄱ"},
	"M":   {"ㅁ"},
	"ND":  {"ㄴㄷㅡ"},
	"CH":  {"ㅊ", "ㅊㅣ"},
	"R":   {"ㄹ"},
	"T":   {"ㅌ"},
	"V":   {"ㅂ", "ㅂㅡ"},
	"SH":  {"ㅅ"},
	"NG":  {"ㅇ"},
	"D":   {"ㄷ", "ㄷㅡ"},
	"JH":  {"ㅈ", "ㅈㅣ"},
	"DR":  {"ㄷㅡㄹ"},
	"KS":  {"ㄱㅅ"},
	"L":   {"ㄹㄹ", "ㄹ"},
	"KL":  {"ㅋㅗㄹㄹ"},
	"KR":  {"ㅋㅗㄹ", "ㅋㅡㄹ"},
	"Z":   {"ㅈ", "ㅅㅡ"},
	"NT":  {"ㄴㅌㅡ"},
	"GR":  {"ㄱㅡㄹ"},
	"PR":  {"ㅍㅡㄹ"},
	"TR":  {"ㅌㅡㄹ"},
	"W":   {"ㅇ", "ㅇㅗ", "ㅇㅜ"},
	"YOW": {"ㅇㅛ"},
	"YA":  {"ㅇㅑ", "ㅇㅛ"},
	"YAA": {"ㅇㅛ"},
	"ZH":  {"ㅈ", "ㅈㅣ"},
	"RD":  {"ㄹㄷㅡ"},
	"BL":  {"ㅂㅡㄹㄹ"},
}

var vowels = map[string][]string{
	"AA":  {"ㅏ", "ㅛ", "ㅗ"},
	"IY":  {"ㅣ"},
	"AH":  {"ㅏ", "ㅓ", "ㅡ", "ㅣ", "ㅔ", "ㅕ", "ㅗ", "ㅜ"},
	"AO":  {"ㅓ", "ㅗ"},
	"AE":  {"ㅐ", "ㅏ"},
	"EH":  {"ㅔ", "ㅏ"},
	"E":   {"ㅔ", "ㅏ", "ㅓ"},
	"OW":  {"ㅗ"},
	"UH":  {"ㅜ", "ㅜㅇㅓ"},
	"IH":  {"ㅣ", "ㅔ"},
	"UW":  {"ㅜ", "ㅡ", "ㅠ"},
	"EY":  {"ㅔㅇㅣ", "ㅏ"},
	"AY":  {"ㅏㅇㅣ"},
	"ER":  {"ㅓ", "ㅓㄹ"},
	"YUW": {"ㅠ"},
	"OY":  {"ㅗㅇㅣ"},
	"AW":  {"ㅏㅇㅜ"},
	"AYR": {"ㅏㅇㅣㅇㅓ"},
	"YOW": {"ㅛ"},
	"WAY": {"ㅘㅇㅣ"},
	"WEY": {"ㅞㅇㅣ"},
	"WIH": {"ㅟ"},
	"YUH": {"ㅠ"},
	"WE":  {"ㅝ"},
	"EHR": {"ㅔㅇㅓ"},
}

// isolated renders consonant clusters that form a syllable on their own.
var isolated = map[string][]string{
	"K":     {"ㅋㅡ"},
	"S":     {"ㅅㅡ"},
	"Z":     {"ㅈㅡ"},
	"CH":    {"ㅊㅣ"},
	"V":     {"ㅂㅡ"},
	"JH":    {"ㅈㅣ"},
	"YOW":   {"ㅇㅛ"},
	"YA":    {"ㅇㅑ", "ㅇㅛ"},
	"F":     {"ㅍㅡ"},
	"RD":    {"ㄷㅡ"},
	"CHAHL": {"ㅅㅕㄹ"},
}

var english = Set{
	Consonants: MustNewTable("consonants", consonants),
	Vowels:     MustNewTable("vowels", vowels),
	Isolated:   MustNewTable("isolated", isolated),
}

// English returns the built-in tables for ARPAbet clusters. The tables are
// shared and immutable.
func English() Set { return english }
