package db

// Atlas search index configuration for the scripture passage collection.
const (
	TextSearchIndexName = "passage_text_search"
	VectorIndexName     = "passage_vector_search"
	VectorPath          = "embedding"
)

// TextSearchPaths are the fields covered by the full-text search index.
var TextSearchPaths = []string{"content", "text", "title"}

// PassageModel is a retrievable scripture passage. Passages come from two
// ingestion pipelines: commentary documents carry `content`, raw scripture
// chunks carry `text`. Consumers must check both fields.
type PassageModel struct {
	PassageID  string `bson:"_id"`
	Book       string `bson:"book"`
	Chapter    int    `bson:"chapter"`
	VerseStart int    `bson:"verseStart,omitempty"`
	VerseEnd   int    `bson:"verseEnd,omitempty"`
	Title      string `bson:"title"`
	SourceURI  string `bson:"sourceUri"`
	Content    string `bson:"content,omitempty"`
	Text       string `bson:"text,omitempty"`
}

func (m PassageModel) Id() string {
	return m.PassageID
}

func (m PassageModel) CollectionName() string {
	return "passages"
}

// PassageAnnModel mirrors PassageModel for the ANN collection carrying the
// embedding vector. Content fields are denormalized so similarity hits can be
// rendered without a second round-trip.
type PassageAnnModel struct {
	PassageID string    `bson:"_id"`
	Embedding []float32 `bson:"embedding"`
	Title     string    `bson:"title"`
	SourceURI string    `bson:"sourceUri"`
	Content   string    `bson:"content,omitempty"`
	Text      string    `bson:"text,omitempty"`
}

func (m PassageAnnModel) Id() string {
	return m.PassageID
}

func (m PassageAnnModel) CollectionName() string {
	return "passages_ann"
}
