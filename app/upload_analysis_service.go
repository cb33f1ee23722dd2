package app

import (
	"context"
	"io"
	"strings"

	"meangate/domain/stats"
	"meangate/domain/verdict"
	"meangate/internal"
	"meangate/internal/errors"
	"meangate/internal/metrics"
	"meangate/ports"
)

// Client-facing messages for uploads that carry no usable file
const (
	MessageFileMissing   = "Archivo no enviado"
	MessageFilenameEmpty = "Nombre de archivo vacío"
)

// UploadAnalysisService turns an uploaded table into a verdict
type UploadAnalysisService struct {
	reader  ports.SampleReaderPort
	service *MeanComparisonService
	logger  *internal.Logger
}

// NewUploadAnalysisService creates the upload use case
func NewUploadAnalysisService(reader ports.SampleReaderPort, service *MeanComparisonService, logger *internal.Logger) *UploadAnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &UploadAnalysisService{reader: reader, service: service, logger: logger}
}

// Config returns the statistical configuration verdicts are computed with
func (s *UploadAnalysisService) Config() stats.Config {
	return s.service.Config()
}

// Analyze extracts the sample from r and evaluates it.
// A nil reader or blank filename is reported as absent input.
func (s *UploadAnalysisService) Analyze(ctx context.Context, filename string, r io.Reader) (*verdict.Verdict, error) {
	v, err := s.analyze(ctx, filename, r)
	if err != nil {
		code := errors.GetCode(err)
		metrics.RecordFailure(code)
		s.logger.Warn("analysis of %q failed (%s): %v", filename, code, err)
		return nil, err
	}
	return v, nil
}

func (s *UploadAnalysisService) analyze(ctx context.Context, filename string, r io.Reader) (*verdict.Verdict, error) {
	if r == nil {
		return nil, errors.InputAbsent(MessageFileMissing)
	}
	if strings.TrimSpace(filename) == "" {
		return nil, errors.InputAbsent(MessageFilenameEmpty)
	}

	sample, err := s.reader.ReadSample(filename, r)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ExtractionFailed(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "analysis cancelled")
	}

	return s.service.Evaluate(ctx, sample)
}
