package analytics

var stopWords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an",
	"and", "any", "are", "aren't", "as", "at", "be", "because", "been", "before",
	"being", "below", "between", "both", "but", "by", "can", "cannot", "could", "did",
	"does", "doing", "done", "down", "during", "each", "even", "every", "few", "for",
	"from", "further", "going", "gonna", "had", "has", "have", "having", "he", "her",
	"here", "hers", "herself", "him", "himself", "his", "how", "into", "its", "itself",
	"just", "know", "like", "made", "make", "many", "more", "most", "much", "must",
	"myself", "need", "never", "now", "only", "other", "ought", "ours", "ourselves", "over",
	"own", "really", "said", "same", "says", "should", "since", "some", "still", "such",
	"than", "that", "thats", "the", "their", "theirs", "them", "themselves", "then", "there",
	"these", "they", "thing", "things", "think", "this", "those", "through", "today", "under",
	"until", "very", "want", "was", "well", "were", "what", "when", "where", "which",
	"while", "whom", "whose", "why", "will", "with", "within", "without", "would", "yeah",
	"your", "yours", "yourself", "yourselves", "dont", "doesnt", "didnt", "cant", "wont", "isnt",
	"wasnt", "youre", "theyre", "there's", "http", "https", "amp",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
