package course_test

import (
	"context"
	"database/sql"
	"testing"

	"school-admin/internal/course"
	courseerrors "school-admin/internal/course/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeCourseRepository struct {
	withTxFn            func(tx *sql.Tx) course.Repository
	createFn            func(ctx context.Context, c *course.Course) error
	findAllBySchoolFn   func(ctx context.Context, schoolID string) ([]course.Course, error)
	findByIDAndSchoolFn func(ctx context.Context, schoolID, id string) (*course.Course, error)
	belongsFn           func(ctx context.Context, schoolID, instructorID string) (bool, error)
	updateFn            func(ctx context.Context, c *course.Course) error
	deleteFn            func(ctx context.Context, schoolID, id string) error
}

func (f *fakeCourseRepository) WithTx(tx *sql.Tx) course.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeCourseRepository) Create(ctx context.Context, c *course.Course) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeCourseRepository) FindAllBySchool(ctx context.Context, schoolID string) ([]course.Course, error) {
	if f.findAllBySchoolFn != nil {
		return f.findAllBySchoolFn(ctx, schoolID)
	}
	return nil, nil
}

func (f *fakeCourseRepository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*course.Course, error) {
	if f.findByIDAndSchoolFn != nil {
		return f.findByIDAndSchoolFn(ctx, schoolID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourseRepository) InstructorBelongsToSchool(ctx context.Context, schoolID, instructorID string) (bool, error) {
	if f.belongsFn != nil {
		return f.belongsFn(ctx, schoolID, instructorID)
	}
	return true, nil
}

func (f *fakeCourseRepository) Update(ctx context.Context, c *course.Course) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, c)
	}
	return nil
}

func (f *fakeCourseRepository) Delete(ctx context.Context, schoolID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, schoolID, id)
	}
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

func TestCourseService_Create(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()

	t.Run("success normalizes the course code", func(t *testing.T) {
		db := newTestDB(t, true)
		defer db.Close()

		var persisted *course.Course
		repo := &fakeCourseRepository{
			createFn: func(ctx context.Context, c *course.Course) error {
				persisted = c
				return nil
			},
		}

		svc := course.NewService(db, repo)
		resp, err := svc.Create(ctx, schoolID, course.CreateCourseRequest{
			Name:    "Advanced Flight Theory",
			Code:    " aft-301 ",
			Credits: 4,
		})

		assert.NoError(t, err)
		assert.Equal(t, "AFT-301", resp.Code)
		assert.Equal(t, 4, resp.Credits)
		assert.Nil(t, resp.InstructorID)
		assert.NotNil(t, persisted)
		assert.Equal(t, schoolID, persisted.SchoolID.String())
	})

	t.Run("success with assigned instructor", func(t *testing.T) {
		db := newTestDB(t, true)
		defer db.Close()

		instructorID := uuid.New().String()
		repo := &fakeCourseRepository{
			belongsFn: func(ctx context.Context, sid, iid string) (bool, error) {
				assert.Equal(t, instructorID, iid)
				return true, nil
			},
		}

		svc := course.NewService(db, repo)
		resp, err := svc.Create(ctx, schoolID, course.CreateCourseRequest{
			Name:         "Navigation",
			Code:         "NAV-101",
			Credits:      3,
			InstructorID: instructorID,
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp.InstructorID)
		assert.Equal(t, instructorID, *resp.InstructorID)
	})

	t.Run("negative instructor from another school", func(t *testing.T) {
		db := newTestDB(t, false)
		defer db.Close()

		repo := &fakeCourseRepository{
			belongsFn: func(ctx context.Context, sid, iid string) (bool, error) {
				return false, nil
			},
		}

		svc := course.NewService(db, repo)
		_, err := svc.Create(ctx, schoolID, course.CreateCourseRequest{
			Name:         "Navigation",
			Code:         "NAV-101",
			InstructorID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, courseerrors.ErrInstructorNotInSchool)
	})

	t.Run("negative duplicate code maps to conflict", func(t *testing.T) {
		db := newTestDB(t, false)
		defer db.Close()

		repo := &fakeCourseRepository{
			createFn: func(ctx context.Context, c *course.Course) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_course_code"}
			},
		}

		svc := course.NewService(db, repo)
		_, err := svc.Create(ctx, schoolID, course.CreateCourseRequest{
			Name: "Navigation",
			Code: "NAV-101",
		})

		assert.ErrorIs(t, err, courseerrors.ErrCourseCodeAlreadyExists)
	})
}

func TestCourseService_Update(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()
	courseID := uuid.New()

	t.Run("success clears the instructor when omitted", func(t *testing.T) {
		db := newTestDB(t, true)
		defer db.Close()

		previous := uuid.New()
		var persisted *course.Course
		repo := &fakeCourseRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*course.Course, error) {
				return &course.Course{
					ID:           courseID,
					SchoolID:     schoolID,
					Name:         "Navigation",
					Code:         "NAV-101",
					Credits:      3,
					InstructorID: &previous,
				}, nil
			},
			updateFn: func(ctx context.Context, c *course.Course) error {
				persisted = c
				return nil
			},
		}

		svc := course.NewService(db, repo)
		resp, err := svc.Update(ctx, schoolID.String(), courseID.String(), course.UpdateCourseRequest{
			Name:    "Navigation II",
			Code:    "NAV-201",
			Credits: 4,
		})

		assert.NoError(t, err)
		assert.Equal(t, "NAV-201", resp.Code)
		assert.Nil(t, resp.InstructorID)
		assert.NotNil(t, persisted)
		assert.Nil(t, persisted.InstructorID)
	})

	t.Run("negative missing course", func(t *testing.T) {
		db := newTestDB(t, false)
		defer db.Close()

		svc := course.NewService(db, &fakeCourseRepository{})
		_, err := svc.Update(ctx, schoolID.String(), courseID.String(), course.UpdateCourseRequest{
			Name: "Navigation",
			Code: "NAV-101",
		})

		assert.ErrorIs(t, err, courseerrors.ErrCourseNotFound)
	})
}

func TestCourseService_Delete(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()
	courseID := uuid.New()

	t.Run("negative missing course", func(t *testing.T) {
		db := newTestDB(t, false)
		defer db.Close()

		svc := course.NewService(db, &fakeCourseRepository{})
		err := svc.Delete(ctx, schoolID.String(), courseID.String())

		assert.ErrorIs(t, err, courseerrors.ErrCourseNotFound)
	})
}
