package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"courseapi/internal/cache"
	apperrors "courseapi/internal/errors"
	"courseapi/internal/model"
	"courseapi/internal/repository"
)

const (
	defaultCourseCacheTTL = 5 * time.Minute
	courseListCacheKey    = "courses:all"
)

// CourseService handles course operations.
type CourseService interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	GetCourse(ctx context.Context, id uint) (*model.Course, error)
	CreateCourse(ctx context.Context, ownerID uint, course *model.Course) (*model.Course, error)
	AuthorizeChange(ctx context.Context, userID, id uint) error
	UpdateCourse(ctx context.Context, userID, id uint, changes model.CourseChanges) error
	DeleteCourse(ctx context.Context, userID, id uint) error
}

type courseService struct {
	repo  repository.CourseRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewCourseService creates a new course service. cache may be nil.
func NewCourseService(repo repository.CourseRepository, cache *cache.Client, ttl time.Duration) CourseService {
	if ttl <= 0 {
		ttl = defaultCourseCacheTTL
	}
	return &courseService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

func (s *courseService) cacheKey(id uint) string {
	return fmt.Sprintf("course:%d", id)
}

func (s *courseService) invalidate(ctx context.Context, ids ...uint) {
	keys := []string{courseListCacheKey}
	for _, id := range ids {
		keys = append(keys, s.cacheKey(id))
	}
	_ = s.cache.Delete(ctx, keys...)
}

// ListCourses returns every course with its owner.
func (s *courseService) ListCourses(ctx context.Context) ([]model.Course, error) {
	var cached []model.Course
	if s.cache.GetJSON(ctx, courseListCacheKey, &cached) {
		return cached, nil
	}

	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	s.cache.SetJSON(ctx, courseListCacheKey, courses, s.ttl)
	return courses, nil
}

// GetCourse retrieves a course by ID with caching.
func (s *courseService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	var cached model.Course
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), course, s.ttl)
	return course, nil
}

// CreateCourse persists course owned by ownerID, whatever UserID it carried.
func (s *courseService) CreateCourse(ctx context.Context, ownerID uint, course *model.Course) (*model.Course, error) {
	course.ID = 0
	course.UserID = ownerID
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.invalidate(ctx)
	return course, nil
}

// AuthorizeChange reports ErrCourseNotFound or ErrNotCourseOwner before any
// payload is looked at. UpdateCourse and DeleteCourse repeat the check.
func (s *courseService) AuthorizeChange(ctx context.Context, userID, id uint) error {
	return s.checkOwner(ctx, userID, id)
}

// UpdateCourse applies changes when userID owns the course.
func (s *courseService) UpdateCourse(ctx context.Context, userID, id uint, changes model.CourseChanges) error {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return err
	}

	rows, err := s.repo.UpdateOwned(ctx, id, userID, changes)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if rows == 0 {
		// Changed between the check and the write, or nothing to change.
		if err := s.checkOwner(ctx, userID, id); err != nil {
			return err
		}
	}

	s.invalidate(ctx, id)
	return nil
}

// DeleteCourse removes the course when userID owns it.
func (s *courseService) DeleteCourse(ctx context.Context, userID, id uint) error {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return err
	}

	rows, err := s.repo.DeleteOwned(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if rows == 0 {
		if err := s.checkOwner(ctx, userID, id); err != nil {
			return err
		}
	}

	s.invalidate(ctx, id)
	return nil
}

// checkOwner reads through the store, never the cache, so ownership is current.
func (s *courseService) checkOwner(ctx context.Context, userID, id uint) error {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("find course: %w", err)
	}
	if course.UserID != userID {
		return apperrors.ErrNotCourseOwner
	}
	return nil
}
