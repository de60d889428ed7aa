package segment

// DefaultIgnored lists the symbols stripped from IPA transcriptions before
// segmentation: slashes, primary and secondary stress marks and the comma
// used between alternative pronunciations.
const DefaultIgnored = "/ˈˌ,"

// EnglishIPA returns the built-in American English IPA to orthography
// tables. Each call returns a fresh [Map].
func EnglishIPA() *Map {
	two := map[[2]rune]string{
		{'o', 'ʊ'}: "o",
		{'e', 'ɪ'}: "ä",
		{'a', 'ɪ'}: "ï",
		{'a', 'ʊ'}: "ö",
		{'ɔ', 'ɪ'}: "ÿ",
		{'ɑ', 'ɹ'}: "ā",
		{'ɪ', 'ɹ'}: "ī",
		{'ʊ', 'ɚ'}: "ō",
		{'ʊ', 'ɹ'}: "ō",
		{'ɔ', 'ɹ'}: "ō",
		{'æ', 'ɹ'}: "à",
		{'ɛ', 'ɚ'}: "à",
		{'e', 'ɹ'}: "à",
		{'ɛ', 'ɹ'}: "à",
		{'t', 'ʃ'}: "c",
		{'d', 'ʒ'}: "j",
		{'h', 'w'}: "ξ",
	}
	one := map[rune]string{
		'æ': "a",
		'ɛ': "e",
		'ɪ': "i",
		'ə': "u",
		'ʌ': "u",
		'i': "ë",
		'u': "ü",
		'ɝ': "ē",
		'ɚ': "ē",
		'ɔ': "ò",
		'ɑ': "ò",
		'ʊ': "ù",
		'ɫ': "l",
		'ɹ': "r",
		'j': "y",
		'θ': "þ",
		'ð': "þ",
		'ɡ': "g",
	}
	return &Map{one: one, two: two}
}
