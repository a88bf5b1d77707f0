package nlp

// protectedWords survive stop-word filtering because they carry intent
// signal ("what are the timings" vs "timings").
var protectedWords = map[string]bool{
	"what": true, "when": true, "where": true, "who": true,
	"how": true, "which": true, "is": true, "are": true,
	"do": true, "does": true, "can": true, "will": true, "the": true,
}

// stopWords is the standard English stop-word set minus protectedWords.
var stopWords = buildStopWords()

func buildStopWords() map[string]bool {
	list := []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
		"you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself", "she", "her", "hers", "herself",
		"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
		"what", "which", "who", "whom", "this", "that", "these", "those",
		"am", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "having", "do", "does", "did", "doing",
		"a", "an", "the", "and", "but", "if", "or", "because", "as",
		"until", "while", "of", "at", "by", "for", "with", "about",
		"against", "between", "into", "through", "during", "before",
		"after", "above", "below", "to", "from", "up", "down", "in",
		"out", "on", "off", "over", "under", "again", "further", "then",
		"once", "here", "there", "when", "where", "why", "how", "all",
		"any", "both", "each", "few", "more", "most", "other", "some",
		"such", "no", "nor", "not", "only", "own", "same", "so", "than",
		"too", "very", "s", "t", "can", "will", "just", "don", "should",
		"now", "d", "ll", "m", "o", "re", "ve", "y",
	}

	set := make(map[string]bool, len(list))
	for _, w := range list {
		if protectedWords[w] {
			continue
		}
		set[w] = true
	}
	return set
}
