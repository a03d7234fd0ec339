package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/traderacademy/backoffice/internal/db"
	"github.com/traderacademy/backoffice/internal/domain"

	"github.com/go-sql-driver/mysql"
)

type courseRepository struct {
	db *sqlx.DB
}

func newCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

func (r *courseRepository) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	const query = `
    SELECT id, title, slug, description, published, created_at, updated_at, deleted_at
    FROM course
    WHERE deleted_at IS NULL
    ORDER BY created_at DESC
    `

	var courses []*domain.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("select courses failed: %w", err)
	}

	return courses, nil
}

func (r *courseRepository) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	const query = `
    SELECT id, title, slug, description, published, created_at, updated_at, deleted_at
    FROM course
    WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
    `

	var course domain.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select course failed: %w", err)
	}

	return &course, nil
}

func (r *courseRepository) CreateCourse(ctx context.Context, course *domain.Course) error {
	const query = `
    INSERT INTO course (id, title, slug, description, published)
    VALUES (uuid_to_bin(:id), :title, :slug, :description, :published)
    `

	_, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("insert course failed: %w", err)
	}

	return nil
}

func (r *courseRepository) UpdateCourse(ctx context.Context, course *domain.Course) error {
	const query = `
    UPDATE course
    SET title = :title, slug = :slug, description = :description, published = :published
    WHERE id = uuid_to_bin(:id) AND deleted_at IS NULL
    `

	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course failed: %w", err)
	}

	return checkAffected(res)
}

func (r *courseRepository) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	const query = `
    UPDATE course
    SET deleted_at = NOW()
    WHERE id = uuid_to_bin(?) AND deleted_at IS NULL
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete course failed: %w", err)
	}

	return checkAffected(res)
}

func (r *courseRepository) ListModules(ctx context.Context, courseID uuid.UUID) ([]*domain.CourseModule, error) {
	const query = `
    SELECT id, course_id, title, position
    FROM course_module
    WHERE course_id = uuid_to_bin(?)
    ORDER BY position ASC
    `

	var modules []*domain.CourseModule
	if err := r.db.SelectContext(ctx, &modules, query, courseID); err != nil {
		return nil, fmt.Errorf("select modules failed: %w", err)
	}

	return modules, nil
}

func (r *courseRepository) CreateModule(ctx context.Context, module *domain.CourseModule) error {
	const query = `
    INSERT INTO course_module (id, course_id, title, position)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:course_id), :title, :position)
    `

	if _, err := r.db.NamedExecContext(ctx, query, module); err != nil {
		return fmt.Errorf("insert module failed: %w", err)
	}

	return nil
}

func (r *courseRepository) RenameModule(ctx context.Context, id uuid.UUID, title string) error {
	const query = `UPDATE course_module SET title = ? WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, title, id)
	if err != nil {
		return fmt.Errorf("rename module failed: %w", err)
	}

	return checkAffected(res)
}

func (r *courseRepository) DeleteModule(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM course_module WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete module failed: %w", err)
	}

	return checkAffected(res)
}

func (r *courseRepository) SetModulePositions(ctx context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error {
	const query = `UPDATE course_module SET position = ? WHERE id = uuid_to_bin(?) AND course_id = uuid_to_bin(?)`

	return r.setPositions(ctx, query, courseID, orderedIDs)
}

func (r *courseRepository) ListSections(ctx context.Context, moduleID uuid.UUID) ([]*domain.CourseSection, error) {
	const query = `
    SELECT id, module_id, title, position
    FROM course_section
    WHERE module_id = uuid_to_bin(?)
    ORDER BY position ASC
    `

	var sections []*domain.CourseSection
	if err := r.db.SelectContext(ctx, &sections, query, moduleID); err != nil {
		return nil, fmt.Errorf("select sections failed: %w", err)
	}

	return sections, nil
}

func (r *courseRepository) CreateSection(ctx context.Context, section *domain.CourseSection) error {
	const query = `
    INSERT INTO course_section (id, module_id, title, position)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:module_id), :title, :position)
    `

	if _, err := r.db.NamedExecContext(ctx, query, section); err != nil {
		return fmt.Errorf("insert section failed: %w", err)
	}

	return nil
}

func (r *courseRepository) RenameSection(ctx context.Context, id uuid.UUID, title string) error {
	const query = `UPDATE course_section SET title = ? WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, title, id)
	if err != nil {
		return fmt.Errorf("rename section failed: %w", err)
	}

	return checkAffected(res)
}

func (r *courseRepository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM course_section WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete section failed: %w", err)
	}

	return checkAffected(res)
}

func (r *courseRepository) SetSectionPositions(ctx context.Context, moduleID uuid.UUID, orderedIDs []uuid.UUID) error {
	const query = `UPDATE course_section SET position = ? WHERE id = uuid_to_bin(?) AND module_id = uuid_to_bin(?)`

	return r.setPositions(ctx, query, moduleID, orderedIDs)
}

func (r *courseRepository) ListLessons(ctx context.Context, sectionID uuid.UUID) ([]*domain.Lesson, error) {
	const query = `
    SELECT id, section_id, title, video_url, content, position
    FROM lesson
    WHERE section_id = uuid_to_bin(?)
    ORDER BY position ASC
    `

	var lessons []*domain.Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, sectionID); err != nil {
		return nil, fmt.Errorf("select lessons failed: %w", err)
	}

	return lessons, nil
}

func (r *courseRepository) CreateLesson(ctx context.Context, lesson *domain.Lesson) error {
	const query = `
    INSERT INTO lesson (id, section_id, title, video_url, content, position)
    VALUES (uuid_to_bin(:id), uuid_to_bin(:section_id), :title, :video_url, :content, :position)
    `

	if _, err := r.db.NamedExecContext(ctx, query, lesson); err != nil {
		return fmt.Errorf("insert lesson failed: %w", err)
	}

	return nil
}

func (r *courseRepository) UpdateLesson(ctx context.Context, lesson *domain.Lesson) error {
	const query = `
    UPDATE lesson
    SET title = :title, video_url = :video_url, content = :content
    WHERE id = uuid_to_bin(:id)
    `

	res, err := r.db.NamedExecContext(ctx, query, lesson)
	if err != nil {
		return fmt.Errorf("update lesson failed: %w", err)
	}

	return checkAffected(res)
}

func (r *courseRepository) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM lesson WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete lesson failed: %w", err)
	}

	return checkAffected(res)
}

func (r *courseRepository) SetLessonPositions(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	const query = `UPDATE lesson SET position = ? WHERE id = uuid_to_bin(?) AND section_id = uuid_to_bin(?)`

	return r.setPositions(ctx, query, sectionID, orderedIDs)
}

// setPositions rewrites sibling ordinals in one transaction so readers never
// observe a half-reindexed tree.
func (r *courseRepository) setPositions(ctx context.Context, query string, parentID uuid.UUID, orderedIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for position, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx, query, position, id, parentID); err != nil {
			return fmt.Errorf("update position failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx failed: %w", err)
	}

	return nil
}

func checkAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected failed: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
