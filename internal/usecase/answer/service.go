package answer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/shoplight/shoplight/internal/domain"
	"github.com/shoplight/shoplight/internal/vectorstore"
)

// Config bounds retrieval behavior.
type Config struct {
	// ContextTopK documents per source feed the answer prompt.
	ContextTopK int
	// ProductTopK scored hits per product search feed the extractor.
	ProductTopK int
	// ScoreThreshold is the inclusive similarity cutoff for product hits.
	ScoreThreshold float64
}

// Request carries one shopper question with the content to ground it in.
type Request struct {
	Question string
	Products []domain.Product
	Files    []domain.FileSource
	Links    []domain.LinkSource
	QAPairs  []domain.QAPair
	Settings domain.ChatSettings
}

// Response is the generated answer plus the matched products.
type Response struct {
	Answer   string
	Products []domain.ExtractedProduct
}

// Service runs the retrieval-augmented answer pipeline: normalize
// content, build per-request vector stores, retrieve context, generate
// one answer and extract matching products.
type Service struct {
	corpus     Normalizer
	translator Translator
	embedder   domain.Embedder
	gen        domain.Generator
	cfg        Config
	logger     *zap.Logger
}

// New creates an answer service.
func New(
	corpus Normalizer,
	translator Translator,
	embedder domain.Embedder,
	gen domain.Generator,
	cfg Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		corpus:     corpus,
		translator: translator,
		embedder:   embedder,
		gen:        gen,
		cfg:        cfg,
		logger:     logger,
	}
}

// stores groups the four per-request vector stores.
type stores struct {
	product *vectorstore.Store
	qa      *vectorstore.Store
	link    *vectorstore.Store
	file    *vectorstore.Store
}

// Answer executes the full pipeline for one request.
func (s *Service) Answer(ctx context.Context, req *Request) (*Response, error) {
	st, err := s.buildStores(ctx, req)
	if err != nil {
		return nil, err
	}

	ctxs, err := s.retrieveContexts(ctx, st, req.Question)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(req.Settings, req.Question, ctxs)

	gen, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	answer := strings.ReplaceAll(gen.Text, "\n", "")

	products, err := s.matchProducts(ctx, st.product, req.Question, req.Settings.Language)
	if err != nil {
		return nil, err
	}

	return &Response{Answer: answer, Products: products}, nil
}

// buildStores normalizes all four sources and embeds them into
// per-request stores concurrently. Any store build failure fails the
// request: a missing store would silently blind retrieval.
func (s *Service) buildStores(ctx context.Context, req *Request) (*stores, error) {
	var (
		st   stores
		errs [4]error
		wg   sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		docs := s.corpus.ProductDocuments(req.Products)
		st.product, errs[0] = vectorstore.Build(ctx, s.embedder, domain.SourceProduct, docs)
	}()
	go func() {
		defer wg.Done()
		docs := s.corpus.QADocuments(req.QAPairs)
		st.qa, errs[1] = vectorstore.Build(ctx, s.embedder, domain.SourceQA, docs)
	}()
	go func() {
		defer wg.Done()
		docs := s.corpus.LinkDocuments(ctx, req.Links)
		st.link, errs[2] = vectorstore.Build(ctx, s.embedder, domain.SourceLink, docs)
	}()
	go func() {
		defer wg.Done()
		docs := s.corpus.FileDocuments(ctx, req.Files)
		st.file, errs[3] = vectorstore.Build(ctx, s.embedder, domain.SourceFile, docs)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &st, nil
}

// retrieveContexts runs the four similarity queries concurrently and
// joins each source's documents into one blank-line-separated block.
// An empty block is valid: the prompt slot just stays empty.
func (s *Service) retrieveContexts(ctx context.Context, st *stores, question string) (contexts, error) {
	type result struct {
		texts []string
		err   error
	}

	var (
		results [4]result
		wg      sync.WaitGroup
	)

	query := func(i int, store *vectorstore.Store) {
		defer wg.Done()
		results[i].texts, results[i].err = store.SimilaritySearch(ctx, s.embedder, question, s.cfg.ContextTopK)
	}

	wg.Add(4)
	go query(0, st.product)
	go query(1, st.qa)
	go query(2, st.link)
	go query(3, st.file)
	wg.Wait()

	for _, r := range results {
		if r.err != nil {
			return contexts{}, fmt.Errorf("retrieve context: %w", r.err)
		}
	}

	return contexts{
		Product: strings.Join(results[0].texts, "\n\n"),
		QA:      strings.Join(results[1].texts, "\n\n"),
		Link:    strings.Join(results[2].texts, "\n\n"),
		File:    strings.Join(results[3].texts, "\n\n"),
	}, nil
}

// matchProducts runs the scored product searches for the original and
// translated questions concurrently, merges them and extracts
// structured product fields. Translation failure degrades to
// original-language hits only.
func (s *Service) matchProducts(ctx context.Context, store *vectorstore.Store, question, language string) ([]domain.ExtractedProduct, error) {
	translated, err := s.translator.ToEnglish(ctx, question, language)
	if err != nil {
		s.logger.Warn("Question translation failed, matching on original language only",
			zap.Error(err))
		translated = ""
	}

	var (
		originalHits, translatedHits []domain.SimilarityHit
		originalErr, translatedErr   error
		wg                           sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		originalHits, originalErr = store.SimilaritySearchWithScore(ctx, s.embedder, question, s.cfg.ProductTopK)
	}()

	if translated != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			translatedHits, translatedErr = store.SimilaritySearchWithScore(ctx, s.embedder, translated, s.cfg.ProductTopK)
		}()
	}
	wg.Wait()

	if originalErr != nil {
		return nil, fmt.Errorf("product search: %w", originalErr)
	}
	if translatedErr != nil {
		return nil, fmt.Errorf("translated product search: %w", translatedErr)
	}

	texts := mergeHits(originalHits, translatedHits, s.cfg.ScoreThreshold)

	products := make([]domain.ExtractedProduct, 0, len(texts))
	for _, text := range texts {
		products = append(products, extractProduct(text))
	}
	return products, nil
}
