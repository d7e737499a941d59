package repositories

import (
	"context"
	"errors"
	"fmt"

	"wellen-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrWaveNotFound = errors.New("wave not found")

type WaveRepository struct {
	DB *pgxpool.Pool
}

func NewWaveRepository(db *pgxpool.Pool) *WaveRepository {
	return &WaveRepository{DB: db}
}

// List returns all waves newest-first with item, submission and location counts.
func (r *WaveRepository) List(ctx context.Context) ([]models.WaveListItem, error) {
	query := `
		SELECT w.id, w.name, w.start_date, w.end_date, w.goal_type, w.photo_only,
			(SELECT COUNT(*) FROM wave_items i WHERE i.wave_id = w.id)
				+ (SELECT COUNT(*) FROM wave_containers c WHERE c.wave_id = w.id),
			(SELECT COUNT(*) FROM submissions s WHERE s.wave_id = w.id),
			(SELECT COUNT(*) FROM wave_locations l WHERE l.wave_id = w.id)
		FROM waves w
		ORDER BY w.start_date DESC, w.id DESC
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list waves: %w", err)
	}
	defer rows.Close()

	var out []models.WaveListItem
	for rows.Next() {
		var it models.WaveListItem
		if err := rows.Scan(&it.ID, &it.Name, &it.StartDate, &it.EndDate, &it.GoalType,
			&it.PhotoOnly, &it.ItemCount, &it.SubmissionCount, &it.LocationCount); err != nil {
			return nil, fmt.Errorf("failed to scan wave row: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *WaveRepository) Get(ctx context.Context, id int) (*models.Wave, error) {
	query := `
		SELECT id, name, start_date, end_date, goal_type,
			COALESCE(goal_percentage, 0), COALESCE(goal_value, 0), photo_only,
			created_at, updated_at
		FROM waves WHERE id = $1
	`
	w := &models.Wave{}
	err := r.DB.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.StartDate, &w.EndDate,
		&w.GoalType, &w.GoalPercentage, &w.GoalValue, &w.PhotoOnly, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWaveNotFound
		}
		return nil, fmt.Errorf("failed to get wave %d: %w", id, err)
	}

	if err := r.loadItems(ctx, w); err != nil {
		return nil, err
	}
	if err := r.loadContainers(ctx, w); err != nil {
		return nil, err
	}
	if err := r.loadSchedules(ctx, w); err != nil {
		return nil, err
	}
	if err := r.loadPhotoTags(ctx, w); err != nil {
		return nil, err
	}
	if err := r.loadLocationIDs(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// loadItems fills the flat item collections. CurrentQuantity is the live sum
// of non-container submissions for the item.
func (r *WaveRepository) loadItems(ctx context.Context, w *models.Wave) error {
	query := `
		SELECT i.id, i.item_type, i.name, i.target_quantity, i.unit_value,
			COALESCE((SELECT SUM(s.quantity) FROM submissions s
				WHERE s.wave_id = i.wave_id AND s.item_type = i.item_type
					AND s.item_id = i.id AND s.container_item_id IS NULL), 0)
		FROM wave_items i
		WHERE i.wave_id = $1
		ORDER BY i.id
	`
	rows, err := r.DB.Query(ctx, query, w.ID)
	if err != nil {
		return fmt.Errorf("failed to load wave items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.Item
		var typ string
		if err := rows.Scan(&it.ID, &typ, &it.Name, &it.TargetQuantity, &it.UnitValue, &it.CurrentQuantity); err != nil {
			return fmt.Errorf("failed to scan wave item: %w", err)
		}
		switch models.ItemType(typ) {
		case models.ItemDisplay:
			w.Displays = append(w.Displays, it)
		case models.ItemKartonware:
			w.Kartonware = append(w.Kartonware, it)
		case models.ItemEinzelprodukt:
			w.Einzelprodukte = append(w.Einzelprodukte, it)
		}
	}
	return rows.Err()
}

func (r *WaveRepository) loadContainers(ctx context.Context, w *models.Wave) error {
	query := `
		SELECT c.id, c.item_type, c.name, c.size,
			p.id, p.name, p.unit_value, p.units_per_container, p.ean
		FROM wave_containers c
		LEFT JOIN wave_products p ON p.container_id = c.id
		WHERE c.wave_id = $1
		ORDER BY c.id, p.id
	`
	rows, err := r.DB.Query(ctx, query, w.ID)
	if err != nil {
		return fmt.Errorf("failed to load wave containers: %w", err)
	}
	defer rows.Close()

	containers := make(map[int]*models.ContainerItem)
	types := make(map[int]models.ItemType)
	var order []int
	for rows.Next() {
		var (
			cid        int
			typ, name  string
			size       *string
			pid, punits *int
			pname, pean *string
			punit      *float64
		)
		if err := rows.Scan(&cid, &typ, &name, &size, &pid, &pname, &punit, &punits, &pean); err != nil {
			return fmt.Errorf("failed to scan wave container: %w", err)
		}
		c, ok := containers[cid]
		if !ok {
			c = &models.ContainerItem{ID: cid, Name: name}
			if size != nil {
				c.Size = *size
			}
			containers[cid] = c
			types[cid] = models.ItemType(typ)
			order = append(order, cid)
		}
		if pid != nil {
			p := models.Product{ID: *pid, Name: *pname}
			if punit != nil {
				p.UnitValue = *punit
			}
			if punits != nil {
				p.UnitsPerContainer = *punits
			}
			if pean != nil {
				p.EAN = *pean
			}
			c.Products = append(c.Products, p)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, cid := range order {
		c := containers[cid]
		switch types[cid] {
		case models.ItemPalette:
			w.Paletten = append(w.Paletten, *c)
		case models.ItemSchuette:
			w.Schuetten = append(w.Schuetten, *c)
		}
	}
	return nil
}

func (r *WaveRepository) loadSchedules(ctx context.Context, w *models.Wave) error {
	query := `SELECT week, weekdays FROM wave_schedules WHERE wave_id = $1 ORDER BY id`
	rows, err := r.DB.Query(ctx, query, w.ID)
	if err != nil {
		return fmt.Errorf("failed to load wave schedules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ScheduleEntry
		if err := rows.Scan(&s.Week, &s.Weekdays); err != nil {
			return fmt.Errorf("failed to scan wave schedule: %w", err)
		}
		w.Schedules = append(w.Schedules, s)
	}
	return rows.Err()
}

func (r *WaveRepository) loadPhotoTags(ctx context.Context, w *models.Wave) error {
	query := `SELECT name, mandatory FROM wave_photo_tags WHERE wave_id = $1 ORDER BY id`
	rows, err := r.DB.Query(ctx, query, w.ID)
	if err != nil {
		return fmt.Errorf("failed to load wave photo tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.PhotoTag
		if err := rows.Scan(&t.Name, &t.Mandatory); err != nil {
			return fmt.Errorf("failed to scan wave photo tag: %w", err)
		}
		w.PhotoTags = append(w.PhotoTags, t)
	}
	return rows.Err()
}

func (r *WaveRepository) loadLocationIDs(ctx context.Context, w *models.Wave) error {
	query := `SELECT location_id FROM wave_locations WHERE wave_id = $1 ORDER BY location_id`
	rows, err := r.DB.Query(ctx, query, w.ID)
	if err != nil {
		return fmt.Errorf("failed to load wave locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan wave location: %w", err)
		}
		w.LocationIDs = append(w.LocationIDs, id)
	}
	return rows.Err()
}

func (r *WaveRepository) Create(ctx context.Context, w *models.Wave) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin wave create: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO waves(name, start_date, end_date, goal_type, goal_percentage, goal_value, photo_only)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query, w.Name, w.StartDate, w.EndDate, w.GoalType,
		w.GoalPercentage, w.GoalValue, w.PhotoOnly).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert wave: %w", err)
	}

	if err := r.insertChildren(ctx, tx, w); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update rewrites the wave row and replaces all child collections. Submissions
// reference items by ID, so replacing the catalog of a wave that already has
// submissions orphans those references; callers gate edits accordingly.
func (r *WaveRepository) Update(ctx context.Context, w *models.Wave) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin wave update: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE waves
		SET name = $2, start_date = $3, end_date = $4, goal_type = $5,
			goal_percentage = $6, goal_value = $7, photo_only = $8, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := tx.Exec(ctx, query, w.ID, w.Name, w.StartDate, w.EndDate, w.GoalType,
		w.GoalPercentage, w.GoalValue, w.PhotoOnly)
	if err != nil {
		return fmt.Errorf("failed to update wave %d: %w", w.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWaveNotFound
	}

	for _, table := range []string{"wave_items", "wave_containers", "wave_schedules", "wave_photo_tags", "wave_locations"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE wave_id = $1", table), w.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := r.insertChildren(ctx, tx, w); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *WaveRepository) insertChildren(ctx context.Context, tx pgx.Tx, w *models.Wave) error {
	itemQuery := `
		INSERT INTO wave_items(wave_id, item_type, name, target_quantity, unit_value)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id
	`
	insertItems := func(items []models.Item, typ models.ItemType) error {
		for i := range items {
			it := &items[i]
			if err := tx.QueryRow(ctx, itemQuery, w.ID, typ, it.Name, it.TargetQuantity, it.UnitValue).Scan(&it.ID); err != nil {
				return fmt.Errorf("failed to insert %s item: %w", typ, err)
			}
		}
		return nil
	}

	if err := insertItems(w.Displays, models.ItemDisplay); err != nil {
		return err
	}
	if err := insertItems(w.Kartonware, models.ItemKartonware); err != nil {
		return err
	}
	if err := insertItems(w.Einzelprodukte, models.ItemEinzelprodukt); err != nil {
		return err
	}

	containerQuery := `
		INSERT INTO wave_containers(wave_id, item_type, name, size)
		VALUES($1, $2, $3, NULLIF($4, ''))
		RETURNING id
	`
	productQuery := `
		INSERT INTO wave_products(container_id, name, unit_value, units_per_container, ean)
		VALUES($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id
	`
	insertContainers := func(containers []models.ContainerItem, typ models.ItemType) error {
		for i := range containers {
			c := &containers[i]
			if err := tx.QueryRow(ctx, containerQuery, w.ID, typ, c.Name, c.Size).Scan(&c.ID); err != nil {
				return fmt.Errorf("failed to insert %s container: %w", typ, err)
			}
			for j := range c.Products {
				p := &c.Products[j]
				if err := tx.QueryRow(ctx, productQuery, c.ID, p.Name, p.UnitValue, p.UnitsPerContainer, p.EAN).Scan(&p.ID); err != nil {
					return fmt.Errorf("failed to insert container product: %w", err)
				}
			}
		}
		return nil
	}

	if err := insertContainers(w.Paletten, models.ItemPalette); err != nil {
		return err
	}
	if err := insertContainers(w.Schuetten, models.ItemSchuette); err != nil {
		return err
	}

	for _, s := range w.Schedules {
		if _, err := tx.Exec(ctx,
			`INSERT INTO wave_schedules(wave_id, week, weekdays) VALUES($1, $2, $3)`,
			w.ID, s.Week, s.Weekdays); err != nil {
			return fmt.Errorf("failed to insert wave schedule: %w", err)
		}
	}
	for _, t := range w.PhotoTags {
		if _, err := tx.Exec(ctx,
			`INSERT INTO wave_photo_tags(wave_id, name, mandatory) VALUES($1, $2, $3)`,
			w.ID, t.Name, t.Mandatory); err != nil {
			return fmt.Errorf("failed to insert wave photo tag: %w", err)
		}
	}
	for _, locID := range w.LocationIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO wave_locations(wave_id, location_id) VALUES($1, $2)`,
			w.ID, locID); err != nil {
			return fmt.Errorf("failed to insert wave location link: %w", err)
		}
	}
	return nil
}

func (r *WaveRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM waves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wave %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWaveNotFound
	}
	return nil
}
