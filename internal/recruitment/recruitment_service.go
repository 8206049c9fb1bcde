package recruitment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	recruitmenterrors "school-admin/internal/recruitment/errors"
	"school-admin/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StageApplied   = "APPLIED"
	StageScreening = "SCREENING"
	StageInterview = "INTERVIEW"
	StageOffer     = "OFFER"
	StageHired     = "HIRED"
	StageRejected  = "REJECTED"
)

//go:generate mockgen -source=recruitment_service.go -destination=mock/recruitment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID string, req CreateCandidateRequest) (CandidateResponse, error)
	GetAll(ctx context.Context, schoolID, stage string) ([]CandidateResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (CandidateResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateCandidateRequest) (CandidateResponse, error)
	TransitionStage(ctx context.Context, schoolID, id, targetStage string) (CandidateResponse, error)
	UploadResume(ctx context.Context, schoolID, id string, reader io.Reader, size int64, contentType string) (CandidateResponse, error)
	DownloadResume(ctx context.Context, schoolID, id string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	storage storage.Client
	bucket  string
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, storageClient storage.Client, bucket string, logger ...*zap.Logger) Service {
	l := zap.L().Named("recruitment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.service")
	}
	return &service{db: db, repo: repo, storage: storageClient, bucket: bucket, logger: l}
}

func (s *service) Create(ctx context.Context, schoolID string, req CreateCandidateRequest) (CandidateResponse, error) {
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return CandidateResponse{}, recruitmenterrors.ErrInvalidSchoolID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create candidate begin tx failed", zap.Error(err))
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c := &Candidate{
		ID:              uuid.New(),
		SchoolID:        schoolUUID,
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		PositionApplied: req.PositionApplied,
		Stage:           StageApplied,
		Notes:           req.Notes,
	}

	if err := qtx.Create(ctx, c); err != nil {
		s.logger.Error("create candidate persist failed", zap.Error(err))
		return CandidateResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}
	s.logger.Info("create candidate success",
		zap.String("candidate_id", c.ID.String()),
		zap.String("position", req.PositionApplied),
	)

	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, schoolID, stage string) ([]CandidateResponse, error) {
	var (
		candidates []Candidate
		err        error
	)
	if stage != "" {
		candidates, err = s.repo.FindAllByStage(ctx, schoolID, stage)
	} else {
		candidates, err = s.repo.FindAllBySchool(ctx, schoolID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(candidates), nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (CandidateResponse, error) {
	c, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, schoolID, id string, req UpdateCandidateRequest) (CandidateResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}

	c.FullName = req.FullName
	c.Email = req.Email
	c.Phone = req.Phone
	c.PositionApplied = req.PositionApplied
	c.Notes = req.Notes

	if err := qtx.Update(ctx, c); err != nil {
		return CandidateResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) TransitionStage(ctx context.Context, schoolID, id, targetStage string) (CandidateResponse, error) {
	s.logger.Debug("transition candidate stage requested",
		zap.String("candidate_id", id),
		zap.String("target_stage", targetStage),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}

	if !isAllowedStageTransition(c.Stage, targetStage) {
		s.logger.Warn("transition candidate stage invalid",
			zap.String("candidate_id", id),
			zap.String("from_stage", c.Stage),
			zap.String("to_stage", targetStage),
		)
		return CandidateResponse{}, recruitmenterrors.ErrInvalidStageTransition
	}

	c.Stage = targetStage

	if err := qtx.Update(ctx, c); err != nil {
		return CandidateResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}
	s.logger.Info("transition candidate stage success",
		zap.String("candidate_id", id),
		zap.String("stage", targetStage),
	)

	return mapToResponse(*c), nil
}

// isAllowedStageTransition walks the pipeline one step at a time.
// HIRED and REJECTED are terminal; any non-terminal stage may be
// rejected directly.
func isAllowedStageTransition(currentStage, targetStage string) bool {
	if currentStage == StageHired || currentStage == StageRejected {
		return false
	}
	if targetStage == StageRejected {
		return true
	}

	switch currentStage {
	case StageApplied:
		return targetStage == StageScreening
	case StageScreening:
		return targetStage == StageInterview
	case StageInterview:
		return targetStage == StageOffer
	case StageOffer:
		return targetStage == StageHired
	default:
		return false
	}
}

func (s *service) UploadResume(ctx context.Context, schoolID, id string, reader io.Reader, size int64, contentType string) (CandidateResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}

	objectKey := fmt.Sprintf("resumes/%s/%s", schoolID, id)

	if err := s.storage.EnsureBucket(ctx, s.bucket); err != nil {
		s.logger.Error("upload resume ensure bucket failed", zap.Error(err))
		return CandidateResponse{}, recruitmenterrors.ErrResumeUploadFailed
	}
	if err := s.storage.PutObject(ctx, s.bucket, objectKey, reader, size, contentType); err != nil {
		s.logger.Error("upload resume put object failed",
			zap.String("candidate_id", id),
			zap.String("object_key", objectKey),
			zap.Error(err),
		)
		return CandidateResponse{}, recruitmenterrors.ErrResumeUploadFailed
	}

	c.ResumeObjectKey = objectKey

	if err := qtx.Update(ctx, c); err != nil {
		return CandidateResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}
	s.logger.Info("upload resume success",
		zap.String("candidate_id", id),
		zap.String("object_key", objectKey),
	)

	return mapToResponse(*c), nil
}

func (s *service) DownloadResume(ctx context.Context, schoolID, id string) (io.ReadCloser, string, error) {
	c, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", recruitmenterrors.ErrCandidateNotFound
		}
		return nil, "", err
	}
	if c.ResumeObjectKey == "" {
		return nil, "", recruitmenterrors.ErrResumeNotFound
	}

	reader, err := s.storage.GetObject(ctx, s.bucket, c.ResumeObjectKey)
	if err != nil {
		s.logger.Error("download resume get object failed",
			zap.String("candidate_id", id),
			zap.String("object_key", c.ResumeObjectKey),
			zap.Error(err),
		)
		return nil, "", recruitmenterrors.ErrResumeNotFound
	}
	return reader, c.FullName, nil
}

func (s *service) Delete(ctx context.Context, schoolID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return recruitmenterrors.ErrCandidateNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, schoolID, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	// best effort; an orphaned object is harmless and the key is
	// deterministic if a cleanup job ever needs it
	if c.ResumeObjectKey != "" {
		if err := s.storage.RemoveObject(ctx, s.bucket, c.ResumeObjectKey); err != nil {
			s.logger.Warn("delete candidate resume cleanup failed",
				zap.String("candidate_id", id),
				zap.String("object_key", c.ResumeObjectKey),
				zap.Error(err),
			)
		}
	}
	return nil
}

func mapToResponse(c Candidate) CandidateResponse {
	return CandidateResponse{
		ID:              c.ID.String(),
		SchoolID:        c.SchoolID.String(),
		FullName:        c.FullName,
		Email:           c.Email,
		Phone:           c.Phone,
		PositionApplied: c.PositionApplied,
		Stage:           c.Stage,
		Notes:           c.Notes,
		HasResume:       c.ResumeObjectKey != "",
	}
}

func mapToListResponse(candidates []Candidate) []CandidateResponse {
	resp := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		resp[i] = mapToResponse(c)
	}
	return resp
}
