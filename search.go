package finsense

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// EmbeddingModel is the Gemini model used to embed transaction texts.
const EmbeddingModel = "gemini-embedding-001"

// embedBatchSize caps how many texts are sent per embedding request.
const embedBatchSize = 100

// An Embedder turns texts into vectors. taskType distinguishes documents
// being indexed from the query searching them.
type Embedder interface {
	Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error)
}

// GeminiEmbedder embeds texts with the Gemini embedding model.
type GeminiEmbedder struct {
	Client *genai.Client
	Model  string
}

// NewGeminiEmbedder returns an embedder on the default embedding model.
func NewGeminiEmbedder(client *genai.Client) *GeminiEmbedder {
	return &GeminiEmbedder{Client: client, Model: EmbeddingModel}
}

// Embed implements Embedder.
func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	resp, err := e.Client.Models.EmbedContent(ctx, e.Model, contents, &genai.EmbedContentConfig{TaskType: taskType})
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts: %w", len(texts), err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Embeddings))
	}

	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// Match is a transaction returned by a similarity search, best first.
type Match struct {
	Transaction Transaction
	Score       float64 // in [0, 1], higher is closer
}

// Index is an in-memory similarity index over the transactions of one
// statement. It lives and dies with the session.
type Index struct {
	statement *Statement
	embedder  Embedder
	vectors   [][]float32
}

// BuildIndex embeds every transaction text of the statement, in batches,
// and returns the ready index.
func BuildIndex(ctx context.Context, s *Statement, embedder Embedder) (*Index, error) {
	texts := make([]string, 0, s.Len())
	for t := range s.All() {
		texts = append(texts, t.Text())
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := min(start+embedBatchSize, len(texts))
		batch, err := embedder.Embed(ctx, texts[start:end], "RETRIEVAL_DOCUMENT")
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	return &Index{statement: s, embedder: embedder, vectors: vectors}, nil
}

// Search returns the k transactions closest to the query.
func (x *Index) Search(ctx context.Context, query string, k int) ([]Match, error) {
	qvs, err := x.embedder.Embed(ctx, []string{query}, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}
	qv := qvs[0]

	matches := make([]Match, 0, len(x.vectors))
	for i, v := range x.vectors {
		matches = append(matches, Match{
			Transaction: x.statement.Transaction(i),
			Score:       (cosine(qv, v) + 1) / 2,
		})
	}
	return topMatches(matches, k), nil
}

// cosine returns the cosine similarity of two vectors, 0 when either is
// degenerate.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// LexicalSearch scores transactions by token overlap with the query. It is
// the fallback when no API key is configured, and good enough for "find my
// netflix charges".
func LexicalSearch(s *Statement, query string, k int) []Match {
	qtokens := strings.Fields(strings.ToLower(query))
	if len(qtokens) == 0 {
		return nil
	}

	var matches []Match
	for t := range s.All() {
		text := strings.ToLower(t.Text())
		hits := 0
		for _, token := range qtokens {
			if strings.Contains(text, token) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		matches = append(matches, Match{
			Transaction: t,
			Score:       float64(hits) / float64(len(qtokens)),
		})
	}
	return topMatches(matches, k)
}

// topMatches sorts matches best first and keeps the top k.
func topMatches(matches []Match, k int) []Match {
	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
