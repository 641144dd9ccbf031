package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"curiozando/pkg/domain"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const migrateLockID int64 = 20250831

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&PostModel{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

// CreatePost stores a new post. ID and CreatedAt are assigned here and are
// immutable afterwards.
func (s *GormStore) CreatePost(p domain.Post) (domain.Post, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	model := postToModel(p)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Post{}, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// ListPosts returns all posts ordered newest first.
func (s *GormStore) ListPosts() ([]domain.Post, error) {
	return s.listPosts()
}

// ListPostsByCategory returns posts in a category, newest first.
func (s *GormStore) ListPostsByCategory(category string) ([]domain.Post, error) {
	return s.listPosts("category = ?", category)
}

func (s *GormStore) listPosts(conds ...any) ([]domain.Post, error) {
	var models []PostModel
	tx := s.db.Order("created_at DESC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Post, 0, len(models))
	for _, m := range models {
		res = append(res, postFromModel(m))
	}
	return res, nil
}

// ListCategories returns distinct non-empty categories.
func (s *GormStore) ListCategories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&PostModel{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetPost retrieves a post by ID.
func (s *GormStore) GetPost(id string) (domain.Post, bool, error) {
	var model PostModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Post{}, false, nil
		}
		return domain.Post{}, false, err
	}
	return postFromModel(model), true, nil
}

// UpdatePost applies the editable fields. Nil fields are untouched; ID and
// CreatedAt never change.
func (s *GormStore) UpdatePost(id string, update domain.PostUpdate) error {
	updates := map[string]any{
		"updated_at": time.Now().UTC(),
	}
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Deck != nil {
		updates["deck"] = *update.Deck
	}
	if update.Content != nil {
		updates["content"] = *update.Content
	}
	tx := s.db.Model(&PostModel{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes a post.
func (s *GormStore) DeletePost(id string) error {
	tx := s.db.Delete(&PostModel{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func postToModel(p domain.Post) PostModel {
	rawSources, _ := json.Marshal(p.Sources)
	return PostModel{
		ID:        p.ID,
		Title:     p.Title,
		Deck:      p.Deck,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Category:  p.Category,
		Sources:   rawSources,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func postFromModel(m PostModel) domain.Post {
	var sources []domain.Source
	if len(m.Sources) > 0 {
		_ = json.Unmarshal(m.Sources, &sources)
	}
	return domain.Post{
		ID:        m.ID,
		Title:     m.Title,
		Deck:      m.Deck,
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		Category:  m.Category,
		Sources:   sources,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
