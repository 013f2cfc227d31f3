package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gleegrow/gleegrow-api/internal/level"
)

// SQLStore persists records in sqlite or postgres. Variable-shape record
// bodies are stored as JSON in TEXT columns; the composite key columns
// stay relational so upserts and prefix scans work.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStorageUnavailable, err)
}

func (s *SQLStore) GetParentByEmail(ctx context.Context, email string) (Parent, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT uid,email,name,password_hash,created_at FROM parents WHERE email=$1`, email)
	var (
		p       Parent
		created int64
	)
	if err := row.Scan(&p.UID, &p.Email, &p.Name, &p.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Parent{}, false, nil
		}
		return Parent{}, false, unavailable("get parent", err)
	}
	p.CreatedAt = time.Unix(created, 0).UTC()
	return p, true, nil
}

func (s *SQLStore) PutParent(ctx context.Context, p Parent) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO parents (uid,email,name,password_hash,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (uid) DO UPDATE SET email=EXCLUDED.email, name=EXCLUDED.name, password_hash=EXCLUDED.password_hash`,
		p.UID, p.Email, p.Name, p.PasswordHash, p.CreatedAt.Unix())
	if err != nil {
		return unavailable("put parent", err)
	}
	return nil
}

func (s *SQLStore) GetChild(ctx context.Context, childID string) (Child, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,parent_uid,name,age,email FROM children WHERE id=$1`, childID)
	var c Child
	if err := row.Scan(&c.ID, &c.ParentUID, &c.Name, &c.Age, &c.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Child{}, false, nil
		}
		return Child{}, false, unavailable("get child", err)
	}
	return c, true, nil
}

func (s *SQLStore) PutChild(ctx context.Context, c Child) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO children (id,parent_uid,name,age,email)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET parent_uid=EXCLUDED.parent_uid, name=EXCLUDED.name, age=EXCLUDED.age, email=EXCLUDED.email`,
		c.ID, c.ParentUID, c.Name, c.Age, c.Email)
	if err != nil {
		return unavailable("put child", err)
	}
	return nil
}

func (s *SQLStore) ListChildren(ctx context.Context, parentUID string) ([]Child, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,parent_uid,name,age,email FROM children WHERE parent_uid=$1 ORDER BY id`, parentUID)
	if err != nil {
		return nil, unavailable("list children", err)
	}
	defer rows.Close()

	out := []Child{}
	for rows.Next() {
		var c Child
		if err := rows.Scan(&c.ID, &c.ParentUID, &c.Name, &c.Age, &c.Email); err != nil {
			return nil, unavailable("list children", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list children", err)
	}
	return out, nil
}

func (s *SQLStore) GetAssessment(ctx context.Context, childID, subject string) (AssessmentRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT level,score,taken_at,taken FROM assessments WHERE child_id=$1 AND subject=$2`, childID, subject)
	var (
		rec     AssessmentRecord
		lvl     int
		takenAt int64
	)
	if err := row.Scan(&lvl, &rec.Score, &takenAt, &rec.Taken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AssessmentRecord{}, false, nil
		}
		return AssessmentRecord{}, false, unavailable("get assessment", err)
	}
	rec.Level = level.Level(lvl)
	rec.Date = time.Unix(takenAt, 0).UTC()
	return rec, true, nil
}

func (s *SQLStore) PutAssessment(ctx context.Context, childID, subject string, rec AssessmentRecord) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO assessments (child_id,subject,level,score,taken_at,taken)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (child_id,subject) DO UPDATE SET level=EXCLUDED.level, score=EXCLUDED.score, taken_at=EXCLUDED.taken_at, taken=EXCLUDED.taken`,
		childID, subject, int(rec.Level), rec.Score, rec.Date.Unix(), rec.Taken)
	if err != nil {
		return unavailable("put assessment", err)
	}
	return nil
}

func (s *SQLStore) GetCompletion(ctx context.Context, childKey, module, identifier string) (CompletionRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT record_json FROM completions WHERE child_key=$1 AND module=$2 AND identifier=$3`,
		childKey, module, identifier)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CompletionRecord{}, false, nil
		}
		return CompletionRecord{}, false, unavailable("get completion", err)
	}
	var rec CompletionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return CompletionRecord{}, false, fmt.Errorf("get completion: decoding record: %w", err)
	}
	return rec, true, nil
}

func (s *SQLStore) PutCompletion(ctx context.Context, rec CompletionRecord) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("put completion: encoding record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO completions (child_key,module,identifier,record_json,updated_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (child_key,module,identifier) DO UPDATE SET record_json=EXCLUDED.record_json, updated_at=EXCLUDED.updated_at`,
		rec.ChildKey, rec.Module, rec.Identifier, string(buf), time.Now().Unix())
	if err != nil {
		return unavailable("put completion", err)
	}
	return nil
}

func (s *SQLStore) ListCompletions(ctx context.Context, childKey, module, identifierPrefix string) ([]CompletionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT record_json FROM completions
		WHERE child_key=$1 AND module=$2 AND identifier LIKE $3 ORDER BY identifier`,
		childKey, module, identifierPrefix+"%")
	if err != nil {
		return nil, unavailable("list completions", err)
	}
	defer rows.Close()

	out := []CompletionRecord{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, unavailable("list completions", err)
		}
		var rec CompletionRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("list completions: decoding record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list completions", err)
	}
	return out, nil
}

func (s *SQLStore) GetLevelTest(ctx context.Context, childID, module, week string) (LevelTestRecord, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT record_json FROM level_tests WHERE child_id=$1 AND module=$2 AND week=$3`,
		childID, module, week)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LevelTestRecord{}, false, nil
		}
		return LevelTestRecord{}, false, unavailable("get level test", err)
	}
	var rec LevelTestRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return LevelTestRecord{}, false, fmt.Errorf("get level test: decoding record: %w", err)
	}
	return rec, true, nil
}

func (s *SQLStore) PutLevelTest(ctx context.Context, rec LevelTestRecord) error {
	buf, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("put level test: encoding record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO level_tests (child_id,module,week,record_json)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (child_id,module,week) DO UPDATE SET record_json=EXCLUDED.record_json`,
		rec.ChildID, rec.Module, rec.Week, string(buf))
	if err != nil {
		return unavailable("put level test", err)
	}
	return nil
}

func (s *SQLStore) ListWeeklyAssignments(ctx context.Context, childID string, limit int) ([]WeeklyAssignment, error) {
	q := `SELECT child_id,week,modules_json,created_at FROM weekly_assignments WHERE child_id=$1 ORDER BY created_at DESC`
	args := []any{childID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, unavailable("list weekly assignments", err)
	}
	defer rows.Close()

	out := []WeeklyAssignment{}
	for rows.Next() {
		var (
			a       WeeklyAssignment
			raw     string
			created int64
		)
		if err := rows.Scan(&a.ChildID, &a.Week, &raw, &created); err != nil {
			return nil, unavailable("list weekly assignments", err)
		}
		if err := json.Unmarshal([]byte(raw), &a.Modules); err != nil {
			return nil, fmt.Errorf("list weekly assignments: decoding modules: %w", err)
		}
		a.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list weekly assignments", err)
	}
	return out, nil
}

func (s *SQLStore) PutWeeklyAssignment(ctx context.Context, a WeeklyAssignment) error {
	buf, err := json.Marshal(a.Modules)
	if err != nil {
		return fmt.Errorf("put weekly assignment: encoding modules: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO weekly_assignments (child_id,week,modules_json,created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (child_id,week) DO UPDATE SET modules_json=EXCLUDED.modules_json`,
		a.ChildID, a.Week, string(buf), a.CreatedAt.Unix())
	if err != nil {
		return unavailable("put weekly assignment", err)
	}
	return nil
}

var _ Store = (*SQLStore)(nil)
