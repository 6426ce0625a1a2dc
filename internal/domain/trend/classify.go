package trend

// SentimentClassifier labels a piece of text with a sentiment. Implementations
// must be deterministic; the ingest pipeline and the pattern math only depend
// on this interface, so a model-backed classifier can replace the keyword one
// without touching aggregation.
type SentimentClassifier interface {
	Classify(text string) Sentiment
}

// TopicClassifier assigns a text to one topic cluster from a fixed taxonomy,
// falling back to TopicGeneral.
type TopicClassifier interface {
	Classify(text string) string
}

// Tagger derives content labels from text. Tags are independent (a text may
// carry several) and ordered by check order.
type Tagger interface {
	Tags(text string) []string
}
