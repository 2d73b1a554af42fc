package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

const (
	exercisesTable = "exercises"
	athletesTable  = "athletes"
)

var exerciseColumns = []string{
	"id", "name", "name_key", "efc", "cnc", "ssc",
	"primary_muscle", "equipment", "involved_muscles", "updated_at",
}

// CatalogStoreImpl serves exercise fatigue profiles from a SQL database.
type CatalogStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.CatalogStore = &CatalogStoreImpl{} // Compile-time check

// NewCatalogStore opens the catalog database and migrates it to the latest schema.
// The none backend yields an empty catalog.
func NewCatalogStore(backend schema.DatabaseBackend, connStr string) (*CatalogStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &CatalogStoreImpl{backend: backend}, nil
	}
	db, err := openDB(backend, connStr, GetCatalogDBFilePath())
	if err != nil {
		return nil, err
	}
	if _, _, err := migrateDB(db, backend, -1); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare catalog schema: %w", err)
	}
	return &CatalogStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// Lookup finds an exercise by id, falling back to a case-insensitive name match.
func (cs *CatalogStoreImpl) Lookup(id, name string) (schema.ExerciseFatigueProfile, error) {
	if cs.db == nil {
		return schema.ExerciseFatigueProfile{}, fmt.Errorf("exercise %q: %w", lookupLabel(id, name), contract.ErrNotFound)
	}

	selectCols := strings.Join(exerciseColumns[:len(exerciseColumns)-1], ", ")
	table := quoteTableName(exercisesTable, cs.backend)

	if id != "" {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s", selectCols, table, placeholder(cs.backend))
		profile, err := scanExercise(cs.db.QueryRow(query, id))
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return schema.ExerciseFatigueProfile{}, fmt.Errorf("failed to look up exercise %q: %w", id, err)
		}
	}

	if key := nameKey(name); key != "" {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE name_key = %s ORDER BY id LIMIT 1", selectCols, table, placeholder(cs.backend))
		profile, err := scanExercise(cs.db.QueryRow(query, key))
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return schema.ExerciseFatigueProfile{}, fmt.Errorf("failed to look up exercise %q: %w", name, err)
		}
	}

	contract.Logger().Debug("catalog miss", zap.String("id", id), zap.String("name", name))
	return schema.ExerciseFatigueProfile{}, fmt.Errorf("exercise %q: %w", lookupLabel(id, name), contract.ErrNotFound)
}

// List returns every exercise ordered by name.
func (cs *CatalogStoreImpl) List() ([]schema.ExerciseFatigueProfile, error) {
	if cs.db == nil {
		return nil, nil
	}
	selectCols := strings.Join(exerciseColumns[:len(exerciseColumns)-1], ", ")
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY name_key, id", selectCols, quoteTableName(exercisesTable, cs.backend))
	rows, err := cs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []schema.ExerciseFatigueProfile
	for rows.Next() {
		profile, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		out = append(out, profile)
	}
	return out, rows.Err()
}

// Import upserts exercises in one transaction and returns how many were written.
func (cs *CatalogStoreImpl) Import(exercises []schema.ExerciseFatigueProfile) (int, error) {
	if cs.db == nil {
		return 0, fmt.Errorf("cannot import into the %s catalog backend", cs.backend)
	}
	for i, e := range exercises {
		if strings.TrimSpace(e.ID) == "" {
			return 0, fmt.Errorf("exercise %d (%q) has no id", i, e.Name)
		}
		if e.EFC < 0 || e.CNC < 0 || e.SSC < 0 {
			return 0, fmt.Errorf("exercise %q has negative costs", e.ID)
		}
	}

	tx, err := cs.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(upsertQuery(cs.backend, exercisesTable, "id", exerciseColumns))
	if err != nil {
		return 0, fmt.Errorf("failed to prepare import: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Unix()
	for _, e := range exercises {
		involved, err := json.Marshal(e.InvolvedMuscles)
		if err != nil {
			return 0, fmt.Errorf("failed to encode muscles of %q: %w", e.ID, err)
		}
		if _, err := stmt.Exec(e.ID, e.Name, nameKey(e.Name), e.EFC, e.CNC, e.SSC,
			schema.NormalizeMuscle(e.PrimaryMuscle), e.Equipment, string(involved), now); err != nil {
			return 0, fmt.Errorf("failed to import exercise %q: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return len(exercises), nil
}

// GetStatus returns status information about the catalog store.
func (cs *CatalogStoreImpl) GetStatus() (schema.CatalogStatus, error) {
	status := schema.CatalogStatus{
		Backend:    string(cs.backend),
		Connected:  cs.db != nil,
		TableSizes: map[string]int64{},
	}
	if cs.db == nil {
		return status, nil
	}

	for table, target := range map[string]*int{exercisesTable: &status.TotalExercises, athletesTable: &status.TotalAthletes} {
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, cs.backend))
		if err := cs.db.QueryRow(query).Scan(target); err != nil {
			return status, fmt.Errorf("failed to count %s: %w", table, err)
		}
		status.TableSizes[table] = tableSize(cs.db, cs.backend, cs.connStr, table, *target)
	}
	status.SchemaVersion = schemaVersion(cs.db)
	return status, nil
}

// Close closes the underlying DB connection.
func (cs *CatalogStoreImpl) Close() error {
	if cs.db != nil {
		return cs.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanExercise reads one row selected with the exercise columns minus updated_at.
func scanExercise(row rowScanner) (schema.ExerciseFatigueProfile, error) {
	var p schema.ExerciseFatigueProfile
	var key, involved string
	if err := row.Scan(&p.ID, &p.Name, &key, &p.EFC, &p.CNC, &p.SSC, &p.PrimaryMuscle, &p.Equipment, &involved); err != nil {
		return p, err
	}
	if involved != "" {
		if err := json.Unmarshal([]byte(involved), &p.InvolvedMuscles); err != nil {
			return p, fmt.Errorf("corrupt involved muscles for %q: %w", p.ID, err)
		}
	}
	return p, nil
}

// nameKey is the case-insensitive lookup key of an exercise name.
func nameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func lookupLabel(id, name string) string {
	if id != "" {
		return id
	}
	return name
}
