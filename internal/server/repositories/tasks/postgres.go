package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/google/uuid"
)

const taskColumns = `id, owner_id, title, description, completed, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	t := &models.Task{}
	err := s.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO tasks (id, owner_id, title, description, completed)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description, task.Completed).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// List matches query literally: strpos gives no meaning to % or _.
func (r *PostgresRepository) List(ctx context.Context, ownerID, query string) ([]models.Task, error) {
	if uuid.Validate(ownerID) != nil {
		return []models.Task{}, nil
	}

	var (
		rows *sql.Rows
		err  error
	)

	if query == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks
			 WHERE owner_id = $1
			 ORDER BY created_at DESC
			 `, ownerID)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks
			 WHERE owner_id = $1 AND strpos(lower(title), lower($2)) > 0
			 ORDER BY created_at DESC
			 `, ownerID, query)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error) {
	if uuid.Validate(id) != nil || uuid.Validate(ownerID) != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE tasks SET
		   title = COALESCE($3, title),
		   description = COALESCE($4, description),
		   completed = COALESCE($5, completed),
		   updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING ` + taskColumns

	var completed any
	if patch.Completed != nil {
		completed = *patch.Completed
	}

	t, err := scanTask(r.db.QueryRowContext(ctx, query,
		id, ownerID, nullable(patch.Title), nullable(patch.Description), completed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	if uuid.Validate(id) != nil || uuid.Validate(ownerID) != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return dbx.SingleRow(res, common.ErrorNotFound)
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
