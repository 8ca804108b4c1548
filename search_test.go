package finsense

import (
	"context"
	"math"
	"testing"
)

// fakeEmbedder assigns each text a fixed vector from a vocabulary, so that
// similarity is fully deterministic.
type fakeEmbedder struct {
	vocabulary map[string][]float32
	calls      []int // batch sizes seen, to check batching
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string, _ string) ([][]float32, error) {
	f.calls = append(f.calls, len(texts))
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, ok := f.vocabulary[text]
		if !ok {
			v = []float32{0, 0, 1}
		}
		vectors[i] = v
	}
	return vectors, nil
}

func TestIndexSearch(t *testing.T) {
	s := NewStatement("x.csv", []Transaction{
		NewTransaction(MustParseDate("2025-07-03"), "netflix.com", "", M(-15.49, "USD")),
		NewTransaction(MustParseDate("2025-07-05"), "corner store", "milk and bread", M(-8.99, "USD")),
	})
	embedder := &fakeEmbedder{vocabulary: map[string][]float32{
		"netflix.com":                 {1, 0, 0},
		"corner store milk and bread": {0, 1, 0},
		"streaming subscription":      {0.9, 0.1, 0},
	}}

	index, err := BuildIndex(context.Background(), s, embedder)
	if err != nil {
		t.Fatal(err)
	}

	matches, err := index.Search(context.Background(), "streaming subscription", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Transaction.Merchant != "netflix.com" {
		t.Errorf("best match = %q, want netflix.com", matches[0].Transaction.Merchant)
	}
	if matches[0].Score <= 0.5 || matches[0].Score > 1 {
		t.Errorf("score = %v, want in (0.5, 1]", matches[0].Score)
	}
}

func TestBuildIndex_batches(t *testing.T) {
	txs := make([]Transaction, embedBatchSize+5)
	for i := range txs {
		txs[i] = NewTransaction(MustParseDate("2025-07-01"), "merchant", "", M(-1.0, "USD"))
	}
	embedder := &fakeEmbedder{}

	if _, err := BuildIndex(context.Background(), NewStatement("x.csv", txs), embedder); err != nil {
		t.Fatal(err)
	}
	if len(embedder.calls) != 2 || embedder.calls[0] != embedBatchSize || embedder.calls[1] != 5 {
		t.Errorf("batch sizes = %v, want [%d 5]", embedder.calls, embedBatchSize)
	}
}

func TestCosine(t *testing.T) {
	testCases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 2}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cosine(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("cosine = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLexicalSearch(t *testing.T) {
	s := testStatement()

	matches := LexicalSearch(s, "netflix", 10)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	for _, m := range matches {
		if m.Transaction.Merchant != "netflix.com" {
			t.Errorf("match = %q, want netflix.com", m.Transaction.Merchant)
		}
		if m.Score != 1 {
			t.Errorf("score = %v, want 1", m.Score)
		}
	}

	// partial overlap scores lower but still matches
	matches = LexicalSearch(s, "milk delivery", 10)
	if len(matches) != 1 || matches[0].Score != 0.5 {
		t.Errorf("matches = %+v, want one at score 0.5", matches)
	}

	if got := LexicalSearch(s, "", 10); got != nil {
		t.Errorf("empty query returned %+v, want nil", got)
	}
	if got := LexicalSearch(s, "no such merchant anywhere", 10); len(got) != 0 {
		t.Errorf("unmatched query returned %+v, want none", got)
	}
}

func TestLexicalSearch_limit(t *testing.T) {
	matches := LexicalSearch(testStatement(), "corner store netflix", 1)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	// the corner store rows hit 2 of 3 tokens, netflix only 1
	if matches[0].Transaction.Merchant != "corner store" {
		t.Errorf("best = %q, want corner store", matches[0].Transaction.Merchant)
	}
}
