package recruitment_test

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"testing"

	"school-admin/internal/recruitment"
	recruitmenterrors "school-admin/internal/recruitment/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCandidateRepository struct {
	createFn            func(ctx context.Context, c *recruitment.Candidate) error
	findByIDAndSchoolFn func(ctx context.Context, schoolID, id string) (*recruitment.Candidate, error)
	updateFn            func(ctx context.Context, c *recruitment.Candidate) error
	deleteFn            func(ctx context.Context, schoolID, id string) error
}

func (f *fakeCandidateRepository) WithTx(tx *sql.Tx) recruitment.Repository { return f }

func (f *fakeCandidateRepository) Create(ctx context.Context, c *recruitment.Candidate) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeCandidateRepository) FindAllBySchool(ctx context.Context, schoolID string) ([]recruitment.Candidate, error) {
	return nil, nil
}

func (f *fakeCandidateRepository) FindAllByStage(ctx context.Context, schoolID, stage string) ([]recruitment.Candidate, error) {
	return nil, nil
}

func (f *fakeCandidateRepository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*recruitment.Candidate, error) {
	if f.findByIDAndSchoolFn != nil {
		return f.findByIDAndSchoolFn(ctx, schoolID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCandidateRepository) Update(ctx context.Context, c *recruitment.Candidate) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeCandidateRepository) Delete(ctx context.Context, schoolID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, schoolID, id)
	}
	return nil
}

type fakeStorageClient struct {
	putFn    func(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error
	getFn    func(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	removed  []string
	ensured  []string
	putKeys  []string
	putBytes []byte
}

func (f *fakeStorageClient) EnsureBucket(ctx context.Context, bucket string) error {
	f.ensured = append(f.ensured, bucket)
	return nil
}

func (f *fakeStorageClient) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	if f.putFn != nil {
		return f.putFn(ctx, bucket, key, reader, size, contentType)
	}
	f.putKeys = append(f.putKeys, key)
	data, _ := io.ReadAll(reader)
	f.putBytes = data
	return nil
}

func (f *fakeStorageClient) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if f.getFn != nil {
		return f.getFn(ctx, bucket, key)
	}
	return io.NopCloser(bytes.NewReader([]byte("resume bytes"))), nil
}

func (f *fakeStorageClient) RemoveObject(ctx context.Context, bucket, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

func newTestDB(t *testing.T, commit bool) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
	return db
}

func candidateAt(schoolID, candidateID uuid.UUID, stage string) *recruitment.Candidate {
	return &recruitment.Candidate{
		ID:              candidateID,
		SchoolID:        schoolID,
		FullName:        "Dana Okafor",
		Email:           "dana@applicants.test",
		PositionApplied: "Mathematics Instructor",
		Stage:           stage,
	}
}

func TestRecruitmentService_TransitionStage(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()
	candidateID := uuid.New()

	transitions := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"applied to screening", recruitment.StageApplied, recruitment.StageScreening, true},
		{"screening to interview", recruitment.StageScreening, recruitment.StageInterview, true},
		{"interview to offer", recruitment.StageInterview, recruitment.StageOffer, true},
		{"offer to hired", recruitment.StageOffer, recruitment.StageHired, true},
		{"interview rejected directly", recruitment.StageInterview, recruitment.StageRejected, true},
		{"applied skips to interview", recruitment.StageApplied, recruitment.StageInterview, false},
		{"hired is terminal", recruitment.StageHired, recruitment.StageRejected, false},
		{"rejected is terminal", recruitment.StageRejected, recruitment.StageScreening, false},
	}

	for _, tc := range transitions {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t, tc.allowed)
			defer db.Close()

			repo := &fakeCandidateRepository{
				findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*recruitment.Candidate, error) {
					return candidateAt(schoolID, candidateID, tc.from), nil
				},
			}

			svc := recruitment.NewService(db, repo, &fakeStorageClient{}, "school-admin-docs")
			resp, err := svc.TransitionStage(ctx, schoolID.String(), candidateID.String(), tc.to)

			if tc.allowed {
				assert.NoError(t, err)
				assert.Equal(t, tc.to, resp.Stage)
			} else {
				assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidStageTransition)
			}
		})
	}

	t.Run("negative missing candidate", func(t *testing.T) {
		db := newTestDB(t, false)
		defer db.Close()

		svc := recruitment.NewService(db, &fakeCandidateRepository{}, &fakeStorageClient{}, "school-admin-docs")
		_, err := svc.TransitionStage(ctx, schoolID.String(), candidateID.String(), recruitment.StageScreening)

		assert.ErrorIs(t, err, recruitmenterrors.ErrCandidateNotFound)
	})
}

func TestRecruitmentService_UploadResume(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()
	candidateID := uuid.New()

	t.Run("success stores object under the deterministic key", func(t *testing.T) {
		db := newTestDB(t, true)
		defer db.Close()

		var persisted *recruitment.Candidate
		repo := &fakeCandidateRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*recruitment.Candidate, error) {
				return candidateAt(schoolID, candidateID, recruitment.StageApplied), nil
			},
			updateFn: func(ctx context.Context, c *recruitment.Candidate) error {
				persisted = c
				return nil
			},
		}
		store := &fakeStorageClient{}

		svc := recruitment.NewService(db, repo, store, "school-admin-docs")
		resp, err := svc.UploadResume(ctx, schoolID.String(), candidateID.String(),
			bytes.NewReader([]byte("pdf bytes")), 9, "application/pdf")

		assert.NoError(t, err)
		assert.True(t, resp.HasResume)

		expectedKey := "resumes/" + schoolID.String() + "/" + candidateID.String()
		assert.Equal(t, []string{"school-admin-docs"}, store.ensured)
		assert.Equal(t, []string{expectedKey}, store.putKeys)
		assert.Equal(t, []byte("pdf bytes"), store.putBytes)
		assert.NotNil(t, persisted)
		assert.Equal(t, expectedKey, persisted.ResumeObjectKey)
	})

	t.Run("negative storage failure does not commit", func(t *testing.T) {
		db := newTestDB(t, false)
		defer db.Close()

		repo := &fakeCandidateRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*recruitment.Candidate, error) {
				return candidateAt(schoolID, candidateID, recruitment.StageApplied), nil
			},
		}
		store := &fakeStorageClient{
			putFn: func(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
				return io.ErrUnexpectedEOF
			},
		}

		svc := recruitment.NewService(db, repo, store, "school-admin-docs")
		_, err := svc.UploadResume(ctx, schoolID.String(), candidateID.String(),
			bytes.NewReader([]byte("pdf bytes")), 9, "application/pdf")

		assert.ErrorIs(t, err, recruitmenterrors.ErrResumeUploadFailed)
	})
}

func TestRecruitmentService_DownloadResume(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()
	candidateID := uuid.New()

	t.Run("success", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeCandidateRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*recruitment.Candidate, error) {
				c := candidateAt(schoolID, candidateID, recruitment.StageInterview)
				c.ResumeObjectKey = "resumes/" + schoolID.String() + "/" + candidateID.String()
				return c, nil
			},
		}

		svc := recruitment.NewService(db, repo, &fakeStorageClient{}, "school-admin-docs")
		reader, name, err := svc.DownloadResume(ctx, schoolID.String(), candidateID.String())

		assert.NoError(t, err)
		assert.Equal(t, "Dana Okafor", name)
		data, _ := io.ReadAll(reader)
		reader.Close()
		assert.Equal(t, []byte("resume bytes"), data)
	})

	t.Run("negative candidate without resume", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeCandidateRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*recruitment.Candidate, error) {
				return candidateAt(schoolID, candidateID, recruitment.StageApplied), nil
			},
		}

		svc := recruitment.NewService(db, repo, &fakeStorageClient{}, "school-admin-docs")
		_, _, err = svc.DownloadResume(ctx, schoolID.String(), candidateID.String())

		assert.ErrorIs(t, err, recruitmenterrors.ErrResumeNotFound)
	})
}

func TestRecruitmentService_Delete(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()
	candidateID := uuid.New()

	t.Run("success removes the stored resume", func(t *testing.T) {
		db := newTestDB(t, true)
		defer db.Close()

		objectKey := "resumes/" + schoolID.String() + "/" + candidateID.String()
		repo := &fakeCandidateRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*recruitment.Candidate, error) {
				c := candidateAt(schoolID, candidateID, recruitment.StageRejected)
				c.ResumeObjectKey = objectKey
				return c, nil
			},
		}
		store := &fakeStorageClient{}

		svc := recruitment.NewService(db, repo, store, "school-admin-docs")
		err := svc.Delete(ctx, schoolID.String(), candidateID.String())

		assert.NoError(t, err)
		assert.Equal(t, []string{objectKey}, store.removed)
	})
}
