package rbac

import (
	"sync"

	"school-admin/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadSchoolPolicy(schoolID string) error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

func (s *service) LoadSchoolPolicy(schoolID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadSchoolPolicyUnlocked(schoolID)
}

// loadSchoolPolicyUnlocked rebuilds the in-memory policy from the
// database. Callers must hold s.mu.
func (s *service) loadSchoolPolicyUnlocked(schoolID string) error {
	s.enforcer.ClearPolicy()

	instructorRoles, err := s.repo.GetInstructorRoles(schoolID)
	if err != nil {
		return err
	}
	s.logger.Debug("rbac load policy",
		zap.String("school_id", schoolID),
		zap.Int("instructor_roles", len(instructorRoles)),
	)

	for _, ir := range instructorRoles {
		_, err := s.enforcer.AddGroupingPolicy(
			ir.InstructorID,
			ir.RoleID,
			schoolID,
		)
		if err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(schoolID)
	if err != nil {
		return err
	}
	s.logger.Debug("rbac load policy",
		zap.String("school_id", schoolID),
		zap.Int("role_permissions", len(rolePerms)),
	)

	for _, rp := range rolePerms {
		_, err := s.enforcer.AddPolicy(
			rp.RoleID,
			schoolID,
			rp.Resource,
			rp.Action,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadSchoolPolicyUnlocked(req.SchoolID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.InstructorID,
		req.SchoolID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("instructor_id", req.InstructorID),
			zap.String("school_id", req.SchoolID),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("instructor_id", req.InstructorID),
		zap.String("school_id", req.SchoolID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)

	return allowed, nil
}
