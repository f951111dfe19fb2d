// Package engine runs the response sheet pipeline: fetch the sheet, resolve
// its administration, read its question blocks, load the answer key and score.
// Stages run strictly in sequence; any stage failure ends the request.
package engine

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/sheet-scorer/internal/admin"
	"github.com/jonathan/sheet-scorer/internal/answerkey"
	"github.com/jonathan/sheet-scorer/internal/document"
	"github.com/jonathan/sheet-scorer/internal/extract"
	"github.com/jonathan/sheet-scorer/internal/fetch"
	"github.com/jonathan/sheet-scorer/internal/report"
	"github.com/jonathan/sheet-scorer/internal/scoring"
	"go.uber.org/zap"
)

// Fetcher retrieves the raw body of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options holds the layout and scoring parameters of the pipeline.
type Options struct {
	Selectors document.Selectors
	Header    admin.Layout
	Mode      admin.Mode
	Schema    extract.Schema
	Bands     scoring.BandConfig
	Scheme    scoring.MarkingScheme
}

// DefaultOptions returns the options for the published response sheet format.
func DefaultOptions() Options {
	return Options{
		Selectors: document.DefaultSelectors(),
		Header:    admin.DefaultLayout(),
		Mode:      admin.ModeLenient,
		Schema:    extract.DefaultSchema(),
		Bands:     scoring.DefaultBands(),
		Scheme:    scoring.DefaultScheme,
	}
}

// Engine scores response sheets. It holds no per-request state and is safe
// for concurrent use.
type Engine struct {
	opts      Options
	resolver  *admin.Resolver
	documents Fetcher
	keys      *answerkey.Provider
	logger    *zap.Logger
}

// New creates an Engine. documents fetches response sheets; keys loads answer keys.
func New(opts Options, documents Fetcher, keys *answerkey.Provider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		opts:      opts,
		resolver:  admin.NewResolver(opts.Header, opts.Mode),
		documents: documents,
		keys:      keys,
		logger:    logger,
	}
}

// Result is the output of one successful scoring run.
type Result struct {
	ID             uuid.UUID         `json:"id"`
	Source         string            `json:"source,omitempty"`
	Administration string            `json:"administration"`
	Report         *scoring.Report   `json:"report"`
	Warnings       []extract.Warning `json:"warnings,omitempty"`
	Elapsed        time.Duration     `json:"elapsed"`
}

// Text renders the result as the plain-text summary message.
func (r *Result) Text() string {
	return report.Text(report.Summary{
		Administration: r.Administration,
		Report:         r.Report,
		Skipped:        len(r.Warnings),
	})
}

// ScoreResponseSheet fetches the response sheet at sheetURL and scores it.
func (e *Engine) ScoreResponseSheet(ctx context.Context, sheetURL string) (*Result, error) {
	runID := uuid.New()
	log := e.logger.With(zap.String("run_id", runID.String()), zap.String("url", sheetURL))
	start := time.Now()

	body, err := e.fetchDocument(ctx, log, sheetURL)
	if err != nil {
		return nil, err
	}
	log.Info("fetched response sheet", zap.Int("bytes", len(body)))

	result, err := e.run(ctx, log, body)
	if err != nil {
		return nil, err
	}
	result.ID = runID
	result.Source = sheetURL
	result.Elapsed = time.Since(start)
	return result, nil
}

// FetchDocument retrieves the response sheet at sheetURL with the engine's
// document fetcher. Failures carry KindInvalidURL, KindFetch or KindCanceled.
func (e *Engine) FetchDocument(ctx context.Context, sheetURL string) ([]byte, error) {
	log := e.logger.With(zap.String("url", sheetURL))
	return e.fetchDocument(ctx, log, sheetURL)
}

func (e *Engine) fetchDocument(ctx context.Context, log *zap.Logger, sheetURL string) ([]byte, error) {
	if err := fetch.ValidateURL(sheetURL); err != nil {
		log.Info("rejected response sheet URL", zap.Error(err))
		return nil, &Error{Kind: KindInvalidURL, Cause: err}
	}

	body, err := e.documents.Fetch(ctx, sheetURL)
	if err != nil {
		engErr := fetchError(ctx, SourceDocument, err)
		log.Error("response sheet fetch failed", zap.String("kind", string(engErr.Kind)), zap.Error(err))
		return nil, engErr
	}
	return body, nil
}

// ScoreDocument scores an already retrieved response sheet.
func (e *Engine) ScoreDocument(ctx context.Context, html []byte) (*Result, error) {
	runID := uuid.New()
	log := e.logger.With(zap.String("run_id", runID.String()))
	start := time.Now()

	result, err := e.run(ctx, log, html)
	if err != nil {
		return nil, err
	}
	result.ID = runID
	result.Elapsed = time.Since(start)
	return result, nil
}

// ResolveDocument reads only the administration key of a response sheet.
func (e *Engine) ResolveDocument(html []byte) (admin.Key, error) {
	doc, err := document.Parse(bytes.NewReader(html), e.opts.Selectors)
	if err != nil {
		return admin.Key{}, classify(context.Background(), "", err)
	}
	key, err := e.resolver.Resolve(doc)
	if err != nil {
		return admin.Key{}, classify(context.Background(), "", err)
	}
	return key, nil
}

func (e *Engine) run(ctx context.Context, log *zap.Logger, html []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindCanceled, Cause: err}
	}

	doc, err := document.Parse(bytes.NewReader(html), e.opts.Selectors)
	if err != nil {
		log.Error("response sheet parse failed", zap.Error(err))
		return nil, classify(ctx, "", err)
	}

	key, err := e.resolver.Resolve(doc)
	if err != nil {
		log.Error("administration resolution failed", zap.Error(err))
		return nil, classify(ctx, "", err)
	}
	administration := key.String()
	log = log.With(zap.String("administration", administration))

	extracted, err := e.opts.Schema.Extract(doc)
	if err != nil {
		log.Error("question extraction failed", zap.Error(err))
		return nil, classify(ctx, administration, err)
	}
	for _, w := range extracted.Warnings {
		log.Warn("skipped malformed question block", zap.Int("block", w.Block), zap.String("reason", w.Reason))
	}
	log.Info("extracted questions",
		zap.Int("records", len(extracted.Records)),
		zap.Int("skipped", len(extracted.Warnings)))

	answers, err := e.keys.Load(ctx, key)
	if err != nil {
		engErr := classify(ctx, administration, err)
		log.Error("answer key load failed", zap.String("kind", string(engErr.Kind)), zap.Error(err))
		return nil, engErr
	}

	if err := ctx.Err(); err != nil {
		return nil, &Error{Kind: KindCanceled, Administration: administration, Cause: err}
	}

	scored := e.opts.Scheme.Score(extracted.Records, answers, e.opts.Bands)
	log.Info("scored response sheet",
		zap.Int("total", scored.Total),
		zap.Int("correct", scored.Correct),
		zap.Int("incorrect", scored.Incorrect),
		zap.Int("unattempted", scored.Unattempted))

	return &Result{
		Administration: administration,
		Report:         scored,
		Warnings:       extracted.Warnings,
	}, nil
}
