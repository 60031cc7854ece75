package repository

import (
	"context"

	"gorm.io/gorm"

	"courseapi/internal/model"
)

// CourseRepository defines course persistence operations.
// Reads preload the owner with its public columns only.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id uint) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	// UpdateOwned applies changes only when the course belongs to ownerID.
	UpdateOwned(ctx context.Context, id, ownerID uint, changes model.CourseChanges) (int64, error)
	// DeleteOwned removes the course only when it belongs to ownerID.
	DeleteOwned(ctx context.Context, id, ownerID uint) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "first_name", "last_name", "email_address")
	})
}

// Create inserts a course without touching the owner row.
func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Omit("User").Create(course).Error
}

// FindByID finds a course by ID.
func (r *courseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := withOwner(r.db.WithContext(ctx)).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// List returns every course ordered by id.
func (r *courseRepository) List(ctx context.Context) ([]model.Course, error) {
	courses := make([]model.Course, 0)
	if err := withOwner(r.db.WithContext(ctx)).Order("id").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// UpdateOwned updates the supplied columns in a single statement guarded by owner.
func (r *courseRepository) UpdateOwned(ctx context.Context, id, ownerID uint, changes model.CourseChanges) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Course{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(changes.Columns())
	return res.RowsAffected, res.Error
}

// DeleteOwned deletes in a single statement guarded by owner.
func (r *courseRepository) DeleteOwned(ctx context.Context, id, ownerID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Course{})
	return res.RowsAffected, res.Error
}
