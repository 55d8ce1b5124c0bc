package api

// Category classifies a document on upload and in search results.
type Category string

const (
	// CategoryAnuncio marks advertising campaign PDFs.
	CategoryAnuncio Category = "anuncio"
	// CategoryOrganico marks social media analysis documents.
	CategoryOrganico Category = "organico"
)

// SearchRequest is the body of POST /search. Field names are the wire
// contract with the AgroFinder backend and must not be renamed.
type SearchRequest struct {
	Query    string   `json:"query"`
	Category Category `json:"category,omitempty"`
	TopK     int      `json:"top_k,omitempty"`
	DateFrom string   `json:"date_from,omitempty"`
	DateTo   string   `json:"date_to,omitempty"`
}

// SearchResult is a single ranked chunk returned by the service. The
// slice order in SearchResponse is the service's ranking and is never
// re-sorted client side.
type SearchResult struct {
	DocumentID      string   `json:"document_id"`
	Filename        string   `json:"filename"`
	Category        Category `json:"category"`
	ChunkText       string   `json:"chunk_text"`
	SimilarityScore float64  `json:"similarity_score"`
	UploadDate      string   `json:"upload_date"`
	PageNumber      *int     `json:"page_number,omitempty"`
	GCSURL          string   `json:"gcs_url"`
}

// SearchResponse is the body returned by POST /search.
type SearchResponse struct {
	Query            string         `json:"query"`
	Results          []SearchResult `json:"results"`
	TotalResults     int            `json:"total_results"`
	ProcessingTimeMS float64        `json:"processing_time_ms"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	Environment  string `json:"environment"`
	VectorDB     string `json:"vector_db"`
	TotalVectors int    `json:"total_vectors"`
	Timestamp    string `json:"timestamp"`
}

// UploadResponse is the body returned by POST /upload. Beyond Message
// the shape is opaque; the extra fields are best-effort.
type UploadResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id,omitempty"`
	NumChunks  int    `json:"num_chunks,omitempty"`
	GCSURL     string `json:"gcs_url,omitempty"`
}

// IngestRequest is the body of POST /ingest.
type IngestRequest struct {
	GCSPath  string   `json:"gcs_path"`
	Category Category `json:"category"`
}

// IngestResponse is the body returned by POST /ingest.
type IngestResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id,omitempty"`
	NumChunks  int    `json:"num_chunks,omitempty"`
}
