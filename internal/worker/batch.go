package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chaitu-2303/Q-A/internal/level"
	"github.com/chaitu-2303/Q-A/internal/model"
)

// DefaultNumQuestions is used when a batch request omits num_questions.
const DefaultNumQuestions = 5

// maxLineBytes bounds a single JSONL request line.
const maxLineBytes = 1 << 20

// ErrInvalidNumQuestions is reported for a negative count or one above the job's limit.
var ErrInvalidNumQuestions = errors.New("invalid num_questions")

// Generator produces question pairs for one paragraph.
type Generator interface {
	Generate(paragraph string, numQuestions int, difficulty string) ([]model.ScoredQA, error)
}

// GenerateJob is one batch entry. MaxQuestions of zero means no limit
// beyond the generator's own.
type GenerateJob struct {
	Index        int
	Request      model.GenerateRequest
	Generator    Generator
	MaxQuestions int
}

// Execute runs the pipeline for the job's request.
func (j *GenerateJob) Execute(ctx context.Context) Result {
	res := &GenerateResult{Index: j.Index}
	if err := ctx.Err(); err != nil {
		res.Error = err
		return res
	}

	n := DefaultNumQuestions
	if j.Request.NumQuestions != nil {
		n = *j.Request.NumQuestions
	}
	if n < 0 || (j.MaxQuestions > 0 && n > j.MaxQuestions) {
		res.Error = fmt.Errorf("%w: %d", ErrInvalidNumQuestions, n)
		return res
	}
	pairs, err := j.Generator.Generate(j.Request.Paragraph, n, j.Request.Difficulty)
	if err != nil {
		res.Error = err
		return res
	}
	res.Response = &model.GenerateResponse{
		Success:        true,
		QAPairs:        pairs,
		TotalQuestions: len(pairs),
		Statistics:     level.Statistics(pairs),
	}
	return res
}

// GenerateResult is the outcome of a GenerateJob.
type GenerateResult struct {
	Index    int
	Response *model.GenerateResponse
	Error    error
}

// GetError returns the job error, if any.
func (r *GenerateResult) GetError() error {
	return r.Error
}

// BatchProcessor runs many generation requests concurrently.
type BatchProcessor struct {
	generator    Generator
	concurrency  int
	maxQuestions int
}

// NewBatchProcessor creates a new batch processor. Requests asking for more
// than maxQuestions pairs fail; zero disables the check.
func NewBatchProcessor(generator Generator, concurrency, maxQuestions int) *BatchProcessor {
	return &BatchProcessor{
		generator:    generator,
		concurrency:  concurrency,
		maxQuestions: maxQuestions,
	}
}

// Process runs every request and returns results in input order.
func (b *BatchProcessor) Process(ctx context.Context, reqs []model.GenerateRequest) []*GenerateResult {
	if len(reqs) == 0 {
		return []*GenerateResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for i, req := range reqs {
			pool.Submit(&GenerateJob{Index: i, Request: req, Generator: b.generator, MaxQuestions: b.maxQuestions})
		}
		pool.Close()
	}()

	results := make([]*GenerateResult, 0, len(reqs))
	for r := range pool.Results() {
		results = append(results, r.(*GenerateResult))
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}

// ProcessFile reads requests from a JSONL file and processes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*GenerateResult, error) {
	reqs, err := ReadRequestsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	return b.Process(ctx, reqs), nil
}

// ReadRequestsFromFile reads one JSON request object per line. Blank lines
// and lines starting with # are skipped.
func ReadRequestsFromFile(filePath string) ([]model.GenerateRequest, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var reqs []model.GenerateRequest

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var req model.GenerateRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		reqs = append(reqs, req)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return reqs, nil
}
