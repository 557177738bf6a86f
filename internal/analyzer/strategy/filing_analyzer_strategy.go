package strategy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"golang-filing-sentiment/internal/analyzer/config"
	"golang-filing-sentiment/internal/analyzer/dto"
	"golang-filing-sentiment/internal/analyzer/repository"
	"golang-filing-sentiment/internal/entity"
	"golang-filing-sentiment/internal/mda"
	"golang-filing-sentiment/internal/sentiment"
	"golang-filing-sentiment/pkg/logger"
	"golang-filing-sentiment/pkg/utils"
)

const (
	stageExtraction   = "extraction"
	stageSegmentation = "segmentation"
)

// FilingAnalyzerStrategy downloads recent filings for a ticker, extracts the
// MD&A section, classifies its sentences and stores one aggregate per filing.
type FilingAnalyzerStrategy struct {
	cfg            *config.Config
	logger         *logger.Logger
	edgarRepo      repository.EdgarRepository
	classifierRepo repository.ClassifierRepository
	filingRepo     repository.FilingRepository
	resultRepo     repository.SentimentResultRepository
	extractor      *mda.Extractor
	segmenter      *mda.Segmenter
}

// NewFilingAnalyzerStrategy creates a new instance of FilingAnalyzerStrategy.
func NewFilingAnalyzerStrategy(
	cfg *config.Config,
	log *logger.Logger,
	edgarRepo repository.EdgarRepository,
	classifierRepo repository.ClassifierRepository,
	filingRepo repository.FilingRepository,
	resultRepo repository.SentimentResultRepository,
) *FilingAnalyzerStrategy {
	return &FilingAnalyzerStrategy{
		cfg:            cfg,
		logger:         log,
		edgarRepo:      edgarRepo,
		classifierRepo: classifierRepo,
		filingRepo:     filingRepo,
		resultRepo:     resultRepo,
		extractor:      mda.NewExtractor(mda.DefaultRules()...),
		segmenter:      mda.NewSegmenter(cfg.Analysis.LegalPhrases),
	}
}

// GetType returns the job type this strategy handles.
func (s *FilingAnalyzerStrategy) GetType() entity.JobType {
	return entity.JobTypeFilingAnalyzer
}

// Execute runs the filing analysis job. Per-document extraction and
// segmentation failures are recorded as skips and do not abort the run; a
// classifier failure does, since every remaining document would fail the same
// way.
func (s *FilingAnalyzerStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload dto.FilingAnalyzerPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
	}
	if payload.Ticker == "" {
		return "", fmt.Errorf("job payload has no ticker")
	}
	if payload.Reports <= 0 {
		payload.Reports = 1
	}
	if len(payload.DocumentTypes) == 0 {
		payload.DocumentTypes = []string{string(entity.DocumentTypeAnnual)}
	}

	refs, err := s.collectFilingRefs(ctx, payload)
	if err != nil {
		return "", err
	}

	result := dto.FilingAnalyzerResult{Ticker: payload.Ticker, Skipped: []dto.DocumentDiagnostic{}}
	var netScores []float64
	labelCounts := map[string]int{}
	var labelOrder []string

	for _, ref := range refs {
		if !utils.ShouldContinue(ctx, s.logger) {
			return "", ctx.Err()
		}

		aggregate, diagnostic, err := s.analyzeFiling(ctx, ref)
		if err != nil {
			return "", err
		}
		if diagnostic != nil {
			s.logger.Warn("Skipping filing",
				logger.StringField("ticker", ref.Ticker),
				logger.StringField("accession_number", ref.AccessionNumber),
				logger.StringField("stage", diagnostic.Stage),
				logger.StringField("reason", diagnostic.Reason),
			)
			result.Skipped = append(result.Skipped, *diagnostic)
			continue
		}

		result.Analyzed++
		netScores = append(netScores, aggregate.NetScore)
		if _, seen := labelCounts[aggregate.DominantLabel]; !seen {
			labelOrder = append(labelOrder, aggregate.DominantLabel)
		}
		labelCounts[aggregate.DominantLabel]++
	}

	result.MeanNetScore = mean(netScores)
	result.DominantTrend = dominantLabel(labelCounts, labelOrder)

	output, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

// collectFilingRefs lists the requested filings across document types and
// orders them oldest first so results land in filing order.
func (s *FilingAnalyzerStrategy) collectFilingRefs(ctx context.Context, payload dto.FilingAnalyzerPayload) ([]dto.FilingRef, error) {
	var refs []dto.FilingRef
	for _, rawType := range payload.DocumentTypes {
		docType := entity.DocumentType(rawType)
		typeRefs, err := s.edgarRepo.GetRecentFilings(ctx, payload.Ticker, docType, payload.Reports)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s filings for %s: %w", docType, payload.Ticker, err)
		}
		refs = append(refs, typeRefs...)
	}

	sort.SliceStable(refs, func(i, j int) bool {
		if !refs[i].FiledAt.Equal(refs[j].FiledAt) {
			return refs[i].FiledAt.Before(refs[j].FiledAt)
		}
		return refs[i].AccessionNumber < refs[j].AccessionNumber
	})
	return refs, nil
}

// analyzeFiling processes one filing end to end. A nil aggregate with a
// non-nil diagnostic means the document was skipped.
func (s *FilingAnalyzerStrategy) analyzeFiling(ctx context.Context, ref dto.FilingRef) (*sentiment.DocumentAggregate, *dto.DocumentDiagnostic, error) {
	section, diagnostic, err := s.obtainSection(ctx, ref)
	if err != nil || diagnostic != nil {
		return nil, diagnostic, err
	}

	sentences := s.segmenter.Split(mda.Normalize(section))
	if len(sentences) == 0 {
		diag := &dto.DocumentDiagnostic{
			AccessionNumber: ref.AccessionNumber,
			DocumentType:    ref.DocumentType,
			Stage:           stageSegmentation,
			Reason:          "no sentences survived filtering",
		}
		return nil, diag, nil
	}

	classifications, err := s.classifierRepo.ClassifySentences(ctx, sentences)
	if err != nil {
		return nil, nil, fmt.Errorf("classifier failed for %s: %w", ref.AccessionNumber, err)
	}

	aggregate := sentiment.Aggregate(classifications)

	counter := sentiment.NewKeywordCounter(s.cfg.Analysis.Stopwords)
	keywords := counter.Top(sentences, s.topKeywords())
	topWords := make([]string, len(keywords))
	for i, kw := range keywords {
		topWords[i] = kw.Token
	}

	filing, err := s.filingRepo.FindByAccessionNumber(ctx, ref.AccessionNumber)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load filing %s: %w", ref.AccessionNumber, err)
	}

	sentimentResult := &entity.SentimentResult{
		FilingID:        filing.ID,
		Ticker:          ref.Ticker,
		AccessionNumber: ref.AccessionNumber,
		DocumentType:    ref.DocumentType,
		NetScore:        aggregate.NetScore,
		DominantLabel:   aggregate.DominantLabel,
		SentenceCount:   aggregate.SentenceCount,
		AvgPositive:     aggregate.AvgPositive,
		AvgNegative:     aggregate.AvgNegative,
		TopKeywords:     topWords,
		FiledAt:         ref.FiledAt,
	}
	if err := s.resultRepo.CreateIgnoreConflict(ctx, sentimentResult); err != nil {
		return nil, nil, fmt.Errorf("failed to store sentiment result for %s: %w", ref.AccessionNumber, err)
	}

	return &aggregate, nil, nil
}

// obtainSection returns the MD&A section for a filing, reusing a previously
// extracted section when one is stored.
func (s *FilingAnalyzerStrategy) obtainSection(ctx context.Context, ref dto.FilingRef) (string, *dto.DocumentDiagnostic, error) {
	if stored, err := s.filingRepo.FindByAccessionNumber(ctx, ref.AccessionNumber); err == nil {
		if stored.Status == entity.FilingStatusExtracted && stored.SectionText != "" {
			return stored.SectionText, nil, nil
		}
	}

	raw, err := s.edgarRepo.DownloadFiling(ctx, ref)
	if err != nil {
		return "", nil, fmt.Errorf("failed to download filing %s: %w", ref.AccessionNumber, err)
	}

	section, err := s.extractor.Extract(raw, ref.DocumentType)
	if err != nil {
		if !errors.Is(err, mda.ErrSectionNotFound) {
			return "", nil, fmt.Errorf("extraction failed for %s: %w", ref.AccessionNumber, err)
		}

		skipped := &entity.Filing{
			Ticker:          ref.Ticker,
			DocumentType:    ref.DocumentType,
			AccessionNumber: ref.AccessionNumber,
			FiledAt:         ref.FiledAt,
			Status:          entity.FilingStatusSkipped,
			SkipReason:      utils.Truncate(err.Error(), 500),
		}
		if err := s.filingRepo.Upsert(ctx, skipped); err != nil {
			return "", nil, fmt.Errorf("failed to store skipped filing %s: %w", ref.AccessionNumber, err)
		}

		diag := &dto.DocumentDiagnostic{
			AccessionNumber: ref.AccessionNumber,
			DocumentType:    ref.DocumentType,
			Stage:           stageExtraction,
			Reason:          "section not found or below minimum length",
		}
		return "", diag, nil
	}

	extracted := &entity.Filing{
		Ticker:          ref.Ticker,
		DocumentType:    ref.DocumentType,
		AccessionNumber: ref.AccessionNumber,
		FiledAt:         ref.FiledAt,
		SectionText:     section,
		SectionLength:   len(section),
		Status:          entity.FilingStatusExtracted,
	}
	if err := s.filingRepo.Upsert(ctx, extracted); err != nil {
		return "", nil, fmt.Errorf("failed to store filing %s: %w", ref.AccessionNumber, err)
	}

	return section, nil, nil
}

func (s *FilingAnalyzerStrategy) topKeywords() int {
	if s.cfg.Analysis.TopKeywords > 0 {
		return s.cfg.Analysis.TopKeywords
	}
	return sentiment.DefaultTopKeywords
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// dominantLabel picks the most frequent label, breaking ties by first
// occurrence in the analyzed sequence.
func dominantLabel(counts map[string]int, order []string) string {
	best := ""
	bestCount := 0
	for _, label := range order {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	if best == "" {
		return sentiment.LabelNeutral
	}
	return best
}
