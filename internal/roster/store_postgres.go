package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"kitledger/pkg/platform/sentinel"
)

// Schema is the DDL for the students table. Applied by migrations in
// production and by the containers helper in integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS students (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    student_no TEXT NOT NULL,
    course     TEXT NOT NULL,
    year       INT  NOT NULL DEFAULT 0,
    semester   INT,
    branch     TEXT NOT NULL DEFAULT '',
    items      JSONB NOT NULL DEFAULT '{}'
)`

// PostgresStore persists students in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, student_no, course, year, semester, branch, items
		 FROM students ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Student, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, student_no, course, year, semester, branch, items
		 FROM students WHERE id = $1`, id)

	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, sentinel.ErrNotFound
		}
		return Student{}, err
	}
	return student, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, student Student) error {
	items, err := json.Marshal(student.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	var semester sql.NullInt64
	if student.Semester != nil {
		semester = sql.NullInt64{Int64: int64(*student.Semester), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO students (id, name, student_no, course, year, semester, branch, items)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     name = EXCLUDED.name,
		     student_no = EXCLUDED.student_no,
		     course = EXCLUDED.course,
		     year = EXCLUDED.year,
		     semester = EXCLUDED.semester,
		     branch = EXCLUDED.branch,
		     items = EXCLUDED.items`,
		student.ID, student.Name, student.StudentID, student.Course,
		student.Year, semester, student.Branch, items)
	if err != nil {
		return fmt.Errorf("upsert student: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (Student, error) {
	var (
		student  Student
		semester sql.NullInt64
		items    []byte
	)
	if err := row.Scan(&student.ID, &student.Name, &student.StudentID,
		&student.Course, &student.Year, &semester, &student.Branch, &items); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, err
		}
		return Student{}, fmt.Errorf("scan student: %w", err)
	}
	if semester.Valid {
		sem := int(semester.Int64)
		student.Semester = &sem
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &student.Items); err != nil {
			return Student{}, fmt.Errorf("decode items for student %s: %w", student.ID, err)
		}
	}
	if student.Items == nil {
		student.Items = map[string]bool{}
	}
	return student, nil
}
